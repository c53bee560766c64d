package orders

import "context"

// RowStore is the capability set the mapper needs from a tabular backend.
// Positions are 1-based; deleting a row shifts every later row up by one.
type RowStore interface {
	ReadAll(ctx context.Context) ([][]string, error)
	AppendRow(ctx context.Context, row []string) error
	UpdateRow(ctx context.Context, position int, row []string) error
	DeleteRow(ctx context.Context, position int) error
	Reset(ctx context.Context, header []string) error
}

// Repository maps orders onto flat rows of a RowStore and back.
type Repository interface {
	Save(ctx context.Context, order Order) error
	ListRows(ctx context.Context) ([]Row, error)
	Update(ctx context.Context, order Order) error
	DeleteByID(ctx context.Context, orderID string) (int, error)
}
