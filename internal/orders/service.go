package orders

import (
	"context"
	"strings"
	"time"

	"github.com/javiercanto/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/javiercanto/orderdesk-backend/pkg/errors"
	"github.com/javiercanto/orderdesk-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Service defines the order operations exposed to the API layer.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderRecord, error)
	List(ctx context.Context, params ListParams) ([]OrderRecord, error)
	Get(ctx context.Context, orderID string) (*OrderRecord, error)
	Update(ctx context.Context, input UpdateOrderInput) (*OrderRecord, error)
	Delete(ctx context.Context, orderID string) (int, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the order service dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders repository required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderRecord, error) {
	status, err := validateOrderFields(input.Client, input.Items, input.AmountPaid, input.IssueDate, input.SubmissionDate, input.Status)
	if err != nil {
		return nil, err
	}

	order := NewOrder(NewOrderParams{
		Client:         strings.TrimSpace(input.Client),
		Items:          itemsFromInput(input.Items),
		AmountPaid:     input.AmountPaid,
		IssueDate:      input.IssueDate,
		SubmissionDate: input.SubmissionDate,
		Status:         status,
		Notes:          input.Notes,
	})

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
	}

	record := recordFromOrder(order)
	return &record, nil
}

func (s *service) List(ctx context.Context, params ListParams) ([]OrderRecord, error) {
	if err := validateDateParam(params.From, "from"); err != nil {
		return nil, err
	}
	if err := validateDateParam(params.To, "to"); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListRows(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	records := GroupRows(rows)
	filtered := make([]OrderRecord, 0, len(records))
	for _, record := range records {
		if params.Client != "" && record.Client != params.Client {
			continue
		}
		// ISO dates compare correctly as strings.
		if params.From != "" && record.IssueDate < params.From {
			continue
		}
		if params.To != "" && record.IssueDate > params.To {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered, nil
}

func (s *service) Get(ctx context.Context, orderID string) (*OrderRecord, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	rows, err := s.repo.ListRows(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read orders")
	}

	for _, record := range GroupRows(rows) {
		if record.ID == orderID {
			found := record
			return &found, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

// Update resubmits an order under its existing ID. A target that no longer
// exists is a warning and a no-op, not an error.
func (s *service) Update(ctx context.Context, input UpdateOrderInput) (*OrderRecord, error) {
	if strings.TrimSpace(input.OrderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	status, err := validateOrderFields(input.Client, input.Items, input.AmountPaid, input.IssueDate, input.SubmissionDate, input.Status)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListRows(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read orders")
	}
	if !orderExists(rows, input.OrderID) {
		s.logg.Warn(s.logg.WithOrderID(ctx, input.OrderID), "update target missing, skipping")
		return nil, nil
	}

	order := Order{
		ID:             input.OrderID,
		Client:         strings.TrimSpace(input.Client),
		Items:          itemsFromInput(input.Items),
		AmountPaid:     input.AmountPaid,
		IssueDate:      input.IssueDate,
		SubmissionDate: input.SubmissionDate,
		Status:         status,
		Notes:          input.Notes,
	}
	if order.IssueDate == "" {
		order.IssueDate = time.Now().Format(DateLayout)
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}

	record := recordFromOrder(order)
	return &record, nil
}

// Delete removes every stored row of the order and reports the row count.
// A missing target is a warning and a no-op.
func (s *service) Delete(ctx context.Context, orderID string) (int, error) {
	if strings.TrimSpace(orderID) == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	deleted, err := s.repo.DeleteByID(ctx, orderID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	if deleted == 0 {
		s.logg.Warn(s.logg.WithOrderID(ctx, orderID), "delete target missing, nothing removed")
	}
	return deleted, nil
}

func itemsFromInput(inputs []ItemInput) []Item {
	items := make([]Item, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, Item{
			Name:           in.Name,
			CostPrice:      in.CostPrice,
			SellPrice:      in.SellPrice,
			Quantity:       in.Quantity,
			Representative: in.Representative,
		})
	}
	return items
}

func recordFromOrder(order Order) OrderRecord {
	return OrderRecord{
		ID:               order.ID,
		Client:           order.Client,
		Items:            order.Items,
		AmountPaid:       order.AmountPaid,
		TotalPrice:       order.TotalPrice(),
		TotalCost:        order.TotalCost(),
		Profit:           order.Profit(),
		RemainingBalance: order.RemainingBalance(),
		IssueDate:        order.IssueDate,
		SubmissionDate:   order.SubmissionDate,
		Status:           order.Status,
		Notes:            order.Notes,
	}
}

func orderExists(rows []Row, orderID string) bool {
	for _, row := range rows {
		if row.OrderID == orderID {
			return true
		}
	}
	return false
}

// validateOrderFields enforces the boundary rules the domain model leaves
// to its caller: non-empty client, at least one item, quantity >= 1,
// non-negative money, parseable dates, known status.
func validateOrderFields(client string, items []ItemInput, amountPaid decimal.Decimal, issueDate, submissionDate, status string) (enums.OrderStatus, error) {
	details := map[string]string{}

	if strings.TrimSpace(client) == "" {
		details["client"] = "is required"
	}
	if len(items) == 0 {
		details["items"] = "must contain at least one item"
	}
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			details["items.name"] = "is required"
		}
		if item.Quantity < 1 {
			details["items.quantity"] = "must be at least 1"
		}
		if item.CostPrice.IsNegative() {
			details["items.cost_price"] = "cannot be negative"
		}
		if item.SellPrice.IsNegative() {
			details["items.sell_price"] = "cannot be negative"
		}
	}
	if amountPaid.IsNegative() {
		details["amount_paid"] = "cannot be negative"
	}
	if issueDate != "" {
		if _, err := time.Parse(DateLayout, issueDate); err != nil {
			details["issue_date"] = "must be a YYYY-MM-DD date"
		}
	}
	if submissionDate != "" {
		if _, err := time.Parse(DateLayout, submissionDate); err != nil {
			details["submission_date"] = "must be a YYYY-MM-DD date"
		}
	}

	parsed := enums.OrderStatusInProgress
	if status != "" {
		var err error
		parsed, err = enums.ParseOrderStatus(status)
		if err != nil {
			details["status"] = "must be one of in_progress, completed, delivered, paid"
		}
	}

	if len(details) > 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid order").WithDetails(details)
	}
	return parsed, nil
}

func validateDateParam(value, name string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, name+" must be a YYYY-MM-DD date")
	}
	return nil
}
