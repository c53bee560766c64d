package orders

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/javiercanto/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/javiercanto/orderdesk-backend/pkg/errors"
	"github.com/javiercanto/orderdesk-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	rows []Row

	saved       []Order
	updated     []Order
	deletedIDs  []string
	deleteCount int

	listErr error
	saveErr error
}

func (f *fakeRepository) Save(ctx context.Context, order Order) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, order)
	return nil
}

func (f *fakeRepository) ListRows(ctx context.Context) ([]Row, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeRepository) Update(ctx context.Context, order Order) error {
	f.updated = append(f.updated, order)
	return nil
}

func (f *fakeRepository) DeleteByID(ctx context.Context, orderID string) (int, error) {
	f.deletedIDs = append(f.deletedIDs, orderID)
	return f.deleteCount, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, testLogger())
	require.NoError(t, err)
	return svc
}

func seedRows(t *testing.T, orders ...Order) []Row {
	t.Helper()
	var rows []Row
	for _, order := range orders {
		for _, item := range order.Items {
			row, err := parseRow(rowCells(order, item))
			require.NoError(t, err)
			rows = append(rows, row)
		}
	}
	return rows
}

func validCreateInput(t *testing.T) CreateOrderInput {
	t.Helper()
	return CreateOrderInput{
		Client: "Acme",
		Items: []ItemInput{
			{Name: "Widget", CostPrice: dec(t, "2.00"), SellPrice: dec(t, "5.00"), Quantity: 3},
		},
		AmountPaid: dec(t, "10.00"),
		IssueDate:  "2026-01-15",
	}
}

func TestCreateGeneratesIDAndSaves(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo)

	record, err := svc.Create(context.Background(), validCreateInput(t))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{8}-[0-9A-F]{6}$`), record.ID)
	assert.Equal(t, "Acme", record.Client)
	assert.Equal(t, enums.OrderStatusInProgress, record.Status)
	assert.True(t, record.TotalPrice.Equal(dec(t, "15.00")))
	assert.True(t, record.RemainingBalance.Equal(dec(t, "5.00")))

	require.Len(t, repo.saved, 1)
	assert.Equal(t, record.ID, repo.saved[0].ID)
}

func TestCreateDefaultsIssueDateToToday(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo)

	input := validCreateInput(t)
	input.IssueDate = ""

	record, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(DateLayout), record.IssueDate)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateOrderInput)
		field  string
	}{
		{"missing client", func(in *CreateOrderInput) { in.Client = "  " }, "client"},
		{"no items", func(in *CreateOrderInput) { in.Items = nil }, "items"},
		{"blank item name", func(in *CreateOrderInput) { in.Items[0].Name = "" }, "items.name"},
		{"zero quantity", func(in *CreateOrderInput) { in.Items[0].Quantity = 0 }, "items.quantity"},
		{"negative cost", func(in *CreateOrderInput) { in.Items[0].CostPrice = dec(t, "-1") }, "items.cost_price"},
		{"negative sell", func(in *CreateOrderInput) { in.Items[0].SellPrice = dec(t, "-1") }, "items.sell_price"},
		{"negative amount paid", func(in *CreateOrderInput) { in.AmountPaid = dec(t, "-0.01") }, "amount_paid"},
		{"bad issue date", func(in *CreateOrderInput) { in.IssueDate = "15/01/2026" }, "issue_date"},
		{"bad submission date", func(in *CreateOrderInput) { in.SubmissionDate = "soon" }, "submission_date"},
		{"unknown status", func(in *CreateOrderInput) { in.Status = "shipped" }, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			svc := newTestService(t, repo)

			input := validCreateInput(t)
			tt.mutate(&input)

			_, err := svc.Create(context.Background(), input)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed, "expected typed validation error")
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

			details, ok := typed.Details().(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.field)
			assert.Empty(t, repo.saved)
		})
	}
}

func TestCreateWrapsRepositoryFailure(t *testing.T) {
	repo := &fakeRepository{saveErr: errors.New("quota exceeded")}
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), validCreateInput(t))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}

func TestListGroupsAndFilters(t *testing.T) {
	orderA := Order{ID: "20260115-AAAAAA", Client: "Acme", Items: sampleItems(t), IssueDate: "2026-01-15", Status: enums.OrderStatusInProgress}
	orderB := Order{ID: "20260120-BBBBBB", Client: "Globex", Items: sampleItems(t)[:1], IssueDate: "2026-01-20", Status: enums.OrderStatusPaid}
	orderC := Order{ID: "20260201-CCCCCC", Client: "Acme", Items: sampleItems(t)[:1], IssueDate: "2026-02-01", Status: enums.OrderStatusCompleted}
	repo := &fakeRepository{rows: seedRows(t, orderA, orderB, orderC)}
	svc := newTestService(t, repo)

	all, err := svc.List(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Len(t, all[0].Items, 2)

	acme, err := svc.List(context.Background(), ListParams{Client: "Acme"})
	require.NoError(t, err)
	require.Len(t, acme, 2)
	assert.Equal(t, orderA.ID, acme[0].ID)
	assert.Equal(t, orderC.ID, acme[1].ID)

	window, err := svc.List(context.Background(), ListParams{From: "2026-01-16", To: "2026-01-31"})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, orderB.ID, window[0].ID)

	both, err := svc.List(context.Background(), ListParams{Client: "Acme", From: "2026-02-01"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, orderC.ID, both[0].ID)
}

func TestListBoundsAreInclusive(t *testing.T) {
	order := Order{ID: "20260115-AAAAAA", Client: "Acme", Items: sampleItems(t)[:1], IssueDate: "2026-01-15"}
	repo := &fakeRepository{rows: seedRows(t, order)}
	svc := newTestService(t, repo)

	records, err := svc.List(context.Background(), ListParams{From: "2026-01-15", To: "2026-01-15"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestListRejectsBadDateParams(t *testing.T) {
	svc := newTestService(t, &fakeRepository{})

	for _, params := range []ListParams{{From: "Jan 15"}, {To: "2026-13-40"}} {
		_, err := svc.List(context.Background(), params)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
}

func TestGetReturnsMatchingOrder(t *testing.T) {
	orderA := Order{ID: "20260115-AAAAAA", Client: "Acme", Items: sampleItems(t), IssueDate: "2026-01-15"}
	repo := &fakeRepository{rows: seedRows(t, orderA)}
	svc := newTestService(t, repo)

	record, err := svc.Get(context.Background(), orderA.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", record.Client)
	assert.Len(t, record.Items, 2)
}

func TestGetUnknownOrderIsNotFound(t *testing.T) {
	svc := newTestService(t, &fakeRepository{})

	_, err := svc.Get(context.Background(), "20260101-ZZZZZZ")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateReplacesExistingOrder(t *testing.T) {
	orderA := Order{ID: "20260115-AAAAAA", Client: "Acme", Items: sampleItems(t), IssueDate: "2026-01-15"}
	repo := &fakeRepository{rows: seedRows(t, orderA)}
	svc := newTestService(t, repo)

	record, err := svc.Update(context.Background(), UpdateOrderInput{
		OrderID: orderA.ID,
		Client:  "Acme",
		Items: []ItemInput{
			{Name: "Widget", CostPrice: dec(t, "2.00"), SellPrice: dec(t, "6.00"), Quantity: 3},
		},
		IssueDate: "2026-01-15",
		Status:    "completed",
	})
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, orderA.ID, record.ID)
	assert.True(t, record.TotalPrice.Equal(dec(t, "18.00")))
	assert.Equal(t, enums.OrderStatusCompleted, record.Status)

	require.Len(t, repo.updated, 1)
	assert.Equal(t, orderA.ID, repo.updated[0].ID)
	assert.Len(t, repo.updated[0].Items, 1)
}

func TestUpdateMissingTargetIsNoop(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo)

	input := UpdateOrderInput{
		OrderID: "20260101-ZZZZZZ",
		Client:  "Acme",
		Items:   []ItemInput{{Name: "Widget", SellPrice: dec(t, "5.00"), Quantity: 1}},
	}

	record, err := svc.Update(context.Background(), input)
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Empty(t, repo.updated)
}

func TestUpdateRequiresOrderID(t *testing.T) {
	svc := newTestService(t, &fakeRepository{})

	_, err := svc.Update(context.Background(), UpdateOrderInput{Client: "Acme"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDeleteReportsRowCount(t *testing.T) {
	repo := &fakeRepository{deleteCount: 3}
	svc := newTestService(t, repo)

	deleted, err := svc.Delete(context.Background(), "20260115-AAAAAA")
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	assert.Equal(t, []string{"20260115-AAAAAA"}, repo.deletedIDs)
}

func TestDeleteMissingTargetIsNoop(t *testing.T) {
	repo := &fakeRepository{deleteCount: 0}
	svc := newTestService(t, repo)

	deleted, err := svc.Delete(context.Background(), "20260101-ZZZZZZ")
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}

func TestDeleteRequiresOrderID(t *testing.T) {
	svc := newTestService(t, &fakeRepository{})

	_, err := svc.Delete(context.Background(), "   ")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
