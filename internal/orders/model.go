package orders

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/javiercanto/orderdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date format used wherever dates cross a boundary.
const DateLayout = "2006-01-02"

// Item is one line within an order. It has no identity of its own beyond
// its position in the owning order's item list.
type Item struct {
	Name           string
	CostPrice      decimal.Decimal
	SellPrice      decimal.Decimal
	Quantity       int
	Representative string
}

// TotalCost returns cost price times quantity.
func (i Item) TotalCost() decimal.Decimal {
	return i.CostPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalPrice returns sell price times quantity.
func (i Item) TotalPrice() decimal.Decimal {
	return i.SellPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Profit returns the margin on this line.
func (i Item) Profit() decimal.Decimal {
	return i.TotalPrice().Sub(i.TotalCost())
}

// Order is one client transaction comprising one or more items.
// The model itself performs no validation; the API boundary enforces
// non-empty client, non-empty items, positive quantities and
// non-negative prices before construction.
type Order struct {
	ID             string
	Client         string
	Items          []Item
	AmountPaid     decimal.Decimal
	IssueDate      string
	SubmissionDate string
	Status         enums.OrderStatus
	Notes          string
}

// NewOrderParams carries the caller-supplied fields for a fresh order.
type NewOrderParams struct {
	Client         string
	Items          []Item
	AmountPaid     decimal.Decimal
	IssueDate      string
	SubmissionDate string
	Status         enums.OrderStatus
	Notes          string
}

// NewOrder builds an order with a freshly generated identifier. The issue
// date defaults to today and the status to in_progress when unset.
func NewOrder(params NewOrderParams) Order {
	order := Order{
		ID:             NewOrderID(),
		Client:         params.Client,
		Items:          params.Items,
		AmountPaid:     params.AmountPaid,
		IssueDate:      params.IssueDate,
		SubmissionDate: params.SubmissionDate,
		Status:         params.Status,
		Notes:          params.Notes,
	}
	if order.IssueDate == "" {
		order.IssueDate = time.Now().Format(DateLayout)
	}
	if order.Status == "" {
		order.Status = enums.OrderStatusInProgress
	}
	return order
}

// NewOrderID returns an identifier of the form YYYYMMDD-XXXXXX, where the
// suffix is the first six characters of a random UUID, uppercased. The ID
// is generated exactly once per order and never checked against the store;
// the collision probability is treated as negligible.
func NewOrderID() string {
	return time.Now().Format("20060102") + "-" + strings.ToUpper(uuid.NewString()[:6])
}

// TotalPrice sums the item sell totals.
func (o Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// TotalCost sums the item cost totals.
func (o Order) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalCost())
	}
	return total
}

// Profit returns total price minus total cost.
func (o Order) Profit() decimal.Decimal {
	return o.TotalPrice().Sub(o.TotalCost())
}

// RemainingBalance returns total price minus the amount already paid.
func (o Order) RemainingBalance() decimal.Decimal {
	return o.TotalPrice().Sub(o.AmountPaid)
}
