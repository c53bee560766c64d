package orders

import (
	"fmt"
	"strconv"

	"github.com/javiercanto/orderdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Header is the canonical first row of the worksheet. Column order is part
// of the persistence contract; every mapper operation verifies it first.
var Header = []string{
	"Order ID", "Client", "Item Name", "Cost Price", "Sell Price", "Quantity", "Representative",
	"Amount Paid", "Total Order Price", "Total Order Cost", "Order Profit", "Remaining Balance",
	"Issue Date", "Submission Date", "Status", "Notes",
}

// ColumnCount is the fixed width of every stored row.
const ColumnCount = 16

const (
	colOrderID = iota
	colClient
	colItemName
	colCostPrice
	colSellPrice
	colQuantity
	colRepresentative
	colAmountPaid
	colTotalOrderPrice
	colTotalOrderCost
	colOrderProfit
	colRemainingBalance
	colIssueDate
	colSubmissionDate
	colStatus
	colNotes
)

// Row is the flattened (order, item) persistence unit. Order-level fields
// are duplicated on every row sharing the same order ID; the derived totals
// are stored values written at save/update time, not recomputed on read.
type Row struct {
	OrderID          string
	Client           string
	Item             Item
	AmountPaid       decimal.Decimal
	TotalOrderPrice  decimal.Decimal
	TotalOrderCost   decimal.Decimal
	OrderProfit      decimal.Decimal
	RemainingBalance decimal.Decimal
	IssueDate        string
	SubmissionDate   string
	Status           enums.OrderStatus
	Notes            string
}

// rowCells flattens one (order, item) pair into the 16-column layout,
// recomputing the order-level totals.
func rowCells(order Order, item Item) []string {
	return []string{
		order.ID,
		order.Client,
		item.Name,
		item.CostPrice.String(),
		item.SellPrice.String(),
		strconv.Itoa(item.Quantity),
		item.Representative,
		order.AmountPaid.String(),
		order.TotalPrice().String(),
		order.TotalCost().String(),
		order.Profit().String(),
		order.RemainingBalance().String(),
		order.IssueDate,
		order.SubmissionDate,
		order.Status.String(),
		order.Notes,
	}
}

// parseRow reconstructs a Row from raw cells. Rows shorter than the schema
// are padded with blanks; numeric cells left empty parse as zero.
func parseRow(cells []string) (Row, error) {
	padded := cells
	if len(padded) < ColumnCount {
		padded = make([]string, ColumnCount)
		copy(padded, cells)
	}

	costPrice, err := parseDecimalCell(padded[colCostPrice], "cost price")
	if err != nil {
		return Row{}, err
	}
	sellPrice, err := parseDecimalCell(padded[colSellPrice], "sell price")
	if err != nil {
		return Row{}, err
	}
	quantity := 0
	if padded[colQuantity] != "" {
		quantity, err = strconv.Atoi(padded[colQuantity])
		if err != nil {
			return Row{}, fmt.Errorf("parsing quantity %q: %w", padded[colQuantity], err)
		}
	}
	amountPaid, err := parseDecimalCell(padded[colAmountPaid], "amount paid")
	if err != nil {
		return Row{}, err
	}
	totalPrice, err := parseDecimalCell(padded[colTotalOrderPrice], "total order price")
	if err != nil {
		return Row{}, err
	}
	totalCost, err := parseDecimalCell(padded[colTotalOrderCost], "total order cost")
	if err != nil {
		return Row{}, err
	}
	profit, err := parseDecimalCell(padded[colOrderProfit], "order profit")
	if err != nil {
		return Row{}, err
	}
	balance, err := parseDecimalCell(padded[colRemainingBalance], "remaining balance")
	if err != nil {
		return Row{}, err
	}

	return Row{
		OrderID: padded[colOrderID],
		Client:  padded[colClient],
		Item: Item{
			Name:           padded[colItemName],
			CostPrice:      costPrice,
			SellPrice:      sellPrice,
			Quantity:       quantity,
			Representative: padded[colRepresentative],
		},
		AmountPaid:       amountPaid,
		TotalOrderPrice:  totalPrice,
		TotalOrderCost:   totalCost,
		OrderProfit:      profit,
		RemainingBalance: balance,
		IssueDate:        padded[colIssueDate],
		SubmissionDate:   padded[colSubmissionDate],
		Status:           enums.OrderStatus(padded[colStatus]),
		Notes:            padded[colNotes],
	}, nil
}

func parseDecimalCell(raw, label string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", label, raw, err)
	}
	return value, nil
}

// OrderRecord is the read-side shape: one logical order reconstructed by
// grouping stored rows. The derived totals come from the stored cells of
// the order's first row.
type OrderRecord struct {
	ID               string
	Client           string
	Items            []Item
	AmountPaid       decimal.Decimal
	TotalPrice       decimal.Decimal
	TotalCost        decimal.Decimal
	Profit           decimal.Decimal
	RemainingBalance decimal.Decimal
	IssueDate        string
	SubmissionDate   string
	Status           enums.OrderStatus
	Notes            string
}

// GroupRows folds flat rows into logical orders. The first row carrying an
// order ID supplies the order-level fields; later rows contribute items
// only. Input order is preserved both across orders and within one.
func GroupRows(rows []Row) []OrderRecord {
	records := make([]OrderRecord, 0)
	indexByID := make(map[string]int)

	for _, row := range rows {
		idx, seen := indexByID[row.OrderID]
		if !seen {
			records = append(records, OrderRecord{
				ID:               row.OrderID,
				Client:           row.Client,
				AmountPaid:       row.AmountPaid,
				TotalPrice:       row.TotalOrderPrice,
				TotalCost:        row.TotalOrderCost,
				Profit:           row.OrderProfit,
				RemainingBalance: row.RemainingBalance,
				IssueDate:        row.IssueDate,
				SubmissionDate:   row.SubmissionDate,
				Status:           row.Status,
				Notes:            row.Notes,
			})
			idx = len(records) - 1
			indexByID[row.OrderID] = idx
		}
		records[idx].Items = append(records[idx].Items, row.Item)
	}

	return records
}
