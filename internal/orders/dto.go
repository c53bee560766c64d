package orders

import "github.com/shopspring/decimal"

// ItemInput carries one item line exactly as the caller submitted it.
type ItemInput struct {
	Name           string
	CostPrice      decimal.Decimal
	SellPrice      decimal.Decimal
	Quantity       int
	Representative string
}

// CreateOrderInput captures a new order before an ID exists for it.
// Dates are ISO calendar dates; Status may be blank for the default.
type CreateOrderInput struct {
	Client         string
	Items          []ItemInput
	AmountPaid     decimal.Decimal
	IssueDate      string
	SubmissionDate string
	Status         string
	Notes          string
}

// UpdateOrderInput resubmits an order under its existing identifier.
type UpdateOrderInput struct {
	OrderID        string
	Client         string
	Items          []ItemInput
	AmountPaid     decimal.Decimal
	IssueDate      string
	SubmissionDate string
	Status         string
	Notes          string
}

// ListParams narrows the listing. Client matches exactly; From/To bound
// the issue date inclusively and may each be blank.
type ListParams struct {
	Client string
	From   string
	To     string
}
