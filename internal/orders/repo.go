package orders

import (
	"context"
	"slices"
)

type repository struct {
	store RowStore
}

// NewRepository builds an order repository bound to the provided row store.
func NewRepository(store RowStore) Repository {
	return &repository{store: store}
}

// ensureHeader verifies the store's first row equals the canonical header
// and otherwise resets the store to an empty sheet with just the header.
// Runs once per repository operation, never per row.
func (r *repository) ensureHeader(ctx context.Context) error {
	rows, err := r.store.ReadAll(ctx)
	if err != nil {
		return err
	}
	if len(rows) > 0 && slices.Equal(rows[0], Header) {
		return nil
	}
	return r.store.Reset(ctx, Header)
}

// Save appends one row per item. Always an insert; no duplicate-ID check.
func (r *repository) Save(ctx context.Context, order Order) error {
	if err := r.ensureHeader(ctx); err != nil {
		return err
	}
	for _, item := range order.Items {
		if err := r.store.AppendRow(ctx, rowCells(order, item)); err != nil {
			return err
		}
	}
	return nil
}

// ListRows re-reads the whole store and parses every data row. No caching.
func (r *repository) ListRows(ctx context.Context) ([]Row, error) {
	if err := r.ensureHeader(ctx); err != nil {
		return nil, err
	}
	values, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0)
	for i := 1; i < len(values); i++ {
		if len(values[i]) == 0 || values[i][colOrderID] == "" {
			continue
		}
		row, err := parseRow(values[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Update reconciles the stored rows for order.ID against the new item list:
// overwrite the first min(existing, new) matched rows in place, append any
// surplus items, and delete the excess matched rows from the highest
// position down so pending deletions never shift each other. Rows belonging
// to other orders are never touched.
func (r *repository) Update(ctx context.Context, order Order) error {
	if err := r.ensureHeader(ctx); err != nil {
		return err
	}
	values, err := r.store.ReadAll(ctx)
	if err != nil {
		return err
	}

	positions := matchPositions(values, order.ID)
	existing := len(positions)
	fresh := len(order.Items)

	for i := 0; i < min(existing, fresh); i++ {
		if err := r.store.UpdateRow(ctx, positions[i], rowCells(order, order.Items[i])); err != nil {
			return err
		}
	}

	for i := existing; i < fresh; i++ {
		if err := r.store.AppendRow(ctx, rowCells(order, order.Items[i])); err != nil {
			return err
		}
	}

	for i := existing - 1; i >= fresh; i-- {
		if err := r.store.DeleteRow(ctx, positions[i]); err != nil {
			return err
		}
	}

	return nil
}

// DeleteByID removes every row carrying the order ID, bottom-up, and
// reports how many rows went away.
func (r *repository) DeleteByID(ctx context.Context, orderID string) (int, error) {
	if err := r.ensureHeader(ctx); err != nil {
		return 0, err
	}
	values, err := r.store.ReadAll(ctx)
	if err != nil {
		return 0, err
	}

	positions := matchPositions(values, orderID)
	for i := len(positions) - 1; i >= 0; i-- {
		if err := r.store.DeleteRow(ctx, positions[i]); err != nil {
			return 0, err
		}
	}
	return len(positions), nil
}

// matchPositions returns the 1-based sheet positions of every data row
// whose first column equals orderID, in store order. Row 1 is the header.
func matchPositions(values [][]string, orderID string) []int {
	positions := make([]int, 0)
	for i := 1; i < len(values); i++ {
		if len(values[i]) > 0 && values[i][colOrderID] == orderID {
			positions = append(positions, i+1)
		}
	}
	return positions
}
