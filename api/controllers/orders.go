package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/javiercanto/orderdesk-backend/api/responses"
	"github.com/javiercanto/orderdesk-backend/api/validators"
	"github.com/javiercanto/orderdesk-backend/internal/orders"
	pkgerrors "github.com/javiercanto/orderdesk-backend/pkg/errors"
	"github.com/javiercanto/orderdesk-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type itemPayload struct {
	Name           string          `json:"name" validate:"required"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellPrice      decimal.Decimal `json:"sell_price"`
	Quantity       int             `json:"quantity" validate:"required,min=1"`
	Representative string          `json:"representative"`
}

type orderPayload struct {
	Client         string          `json:"client" validate:"required"`
	Items          []itemPayload   `json:"items" validate:"required,min=1,dive"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	IssueDate      string          `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	SubmissionDate string          `json:"submission_date" validate:"omitempty,datetime=2006-01-02"`
	Status         string          `json:"status" validate:"omitempty,oneof=in_progress completed delivered paid"`
	Notes          string          `json:"notes"`
}

type itemResponse struct {
	Name           string          `json:"name"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellPrice      decimal.Decimal `json:"sell_price"`
	Quantity       int             `json:"quantity"`
	Representative string          `json:"representative"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Profit         decimal.Decimal `json:"profit"`
}

type orderResponse struct {
	OrderID          string          `json:"order_id"`
	Client           string          `json:"client"`
	Items            []itemResponse  `json:"items"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	Profit           decimal.Decimal `json:"profit"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	IssueDate        string          `json:"issue_date"`
	SubmissionDate   string          `json:"submission_date"`
	Status           string          `json:"status"`
	Notes            string          `json:"notes,omitempty"`
}

type updateOrderResponse struct {
	Updated bool           `json:"updated"`
	Order   *orderResponse `json:"order,omitempty"`
}

type deleteOrderResponse struct {
	RowsDeleted int `json:"rows_deleted"`
}

// CreateOrder persists a new order with a freshly generated identifier.
func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orderPayload
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Create(r.Context(), orders.CreateOrderInput{
			Client:         req.Client,
			Items:          itemInputs(req.Items),
			AmountPaid:     req.AmountPaid,
			IssueDate:      req.IssueDate,
			SubmissionDate: req.SubmissionDate,
			Status:         req.Status,
			Notes:          req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, orderFromRecord(*record))
	}
}

// ListOrders returns stored orders, optionally narrowed by client and
// issue-date range.
func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := orders.ListParams{
			Client: strings.TrimSpace(r.URL.Query().Get("client")),
			From:   strings.TrimSpace(r.URL.Query().Get("from")),
			To:     strings.TrimSpace(r.URL.Query().Get("to")),
		}

		records, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]orderResponse, 0, len(records))
		for _, record := range records {
			out = append(out, orderFromRecord(record))
		}
		responses.WriteSuccess(w, out)
	}
}

// GetOrder returns one order by its identifier.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderID")
		record, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orderFromRecord(*record))
	}
}

// UpdateOrder resubmits an order under its existing identifier. A target
// that vanished since the caller loaded it yields updated=false, not an
// error.
func UpdateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderID")
		if strings.TrimSpace(orderID) == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id required"))
			return
		}

		var req orderPayload
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Update(r.Context(), orders.UpdateOrderInput{
			OrderID:        orderID,
			Client:         req.Client,
			Items:          itemInputs(req.Items),
			AmountPaid:     req.AmountPaid,
			IssueDate:      req.IssueDate,
			SubmissionDate: req.SubmissionDate,
			Status:         req.Status,
			Notes:          req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := updateOrderResponse{Updated: record != nil}
		if record != nil {
			out := orderFromRecord(*record)
			resp.Order = &out
		}
		responses.WriteSuccess(w, resp)
	}
}

// DeleteOrder removes every stored row of the order.
func DeleteOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderID")
		deleted, err := svc.Delete(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deleteOrderResponse{RowsDeleted: deleted})
	}
}

func itemInputs(payloads []itemPayload) []orders.ItemInput {
	inputs := make([]orders.ItemInput, 0, len(payloads))
	for _, p := range payloads {
		inputs = append(inputs, orders.ItemInput{
			Name:           p.Name,
			CostPrice:      p.CostPrice,
			SellPrice:      p.SellPrice,
			Quantity:       p.Quantity,
			Representative: p.Representative,
		})
	}
	return inputs
}

func orderFromRecord(record orders.OrderRecord) orderResponse {
	items := make([]itemResponse, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, itemResponse{
			Name:           item.Name,
			CostPrice:      item.CostPrice,
			SellPrice:      item.SellPrice,
			Quantity:       item.Quantity,
			Representative: item.Representative,
			TotalCost:      item.TotalCost(),
			TotalPrice:     item.TotalPrice(),
			Profit:         item.Profit(),
		})
	}
	return orderResponse{
		OrderID:          record.ID,
		Client:           record.Client,
		Items:            items,
		AmountPaid:       record.AmountPaid,
		TotalPrice:       record.TotalPrice,
		TotalCost:        record.TotalCost,
		Profit:           record.Profit,
		RemainingBalance: record.RemainingBalance,
		IssueDate:        record.IssueDate,
		SubmissionDate:   record.SubmissionDate,
		Status:           record.Status.String(),
		Notes:            record.Notes,
	}
}
