package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javiercanto/orderdesk-backend/pkg/config"
	"github.com/javiercanto/orderdesk-backend/pkg/logger"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Column span of the order schema: A through P.
const lastColumn = "P"

var (
	errSpreadsheetIDRequired = errors.New("sheets spreadsheet id is required")
	errWorksheetRequired     = errors.New("sheets worksheet name is required")
	errClientNotInitialized  = errors.New("sheets client not initialized")
)

// Client talks to a single worksheet of a Google spreadsheet using the
// row-level operations the order mapper needs: append, read-all, update
// and delete by 1-based row position, and clear-and-reset.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
	worksheetID   int64
	cfg           config.SheetsConfig
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// New creates a Sheets client and verifies the configured worksheet exists.
func New(ctx context.Context, cfg config.SheetsConfig, logg *logger.Logger) (*Client, error) {
	spreadsheetID := strings.TrimSpace(cfg.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errSpreadsheetIDRequired
	}
	worksheet := strings.TrimSpace(cfg.WorksheetName)
	if worksheet == "" {
		return nil, errWorksheetRequired
	}

	opts := clientOptions(cfg)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	client := &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
		cfg:           cfg,
	}

	if err := client.resolveWorksheetID(ctx); err != nil {
		return nil, err
	}

	if logg != nil {
		logg.Info(ctx, "sheets client initialized")
	}

	return client, nil
}

func clientOptions(cfg config.SheetsConfig) []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case strings.TrimSpace(cfg.ApplicationCredentials) != "":
		opts = append(opts, option.WithCredentialsFile(cfg.ApplicationCredentials))
	}
	return opts
}

func (c *Client) resolveWorksheetID(ctx context.Context) error {
	spreadsheet, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets(properties(sheetId,title))").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("fetching spreadsheet %s: %w", c.spreadsheetID, err)
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == c.worksheet {
			c.worksheetID = sheet.Properties.SheetId
			return nil
		}
	}
	return fmt.Errorf("worksheet %q not found in spreadsheet %s", c.worksheet, c.spreadsheetID)
}

// ReadAll returns every populated row of the worksheet, header included.
func (c *Client) ReadAll(ctx context.Context) ([][]string, error) {
	if c == nil || c.svc == nil {
		return nil, errClientNotInitialized
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.allRange()).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow adds one row after the last populated row of the worksheet.
func (c *Client) AppendRow(ctx context.Context, row []string) error {
	if c == nil || c.svc == nil {
		return errClientNotInitialized
	}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.allRange(), valueRange(row)).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending row: %w", err)
	}
	return nil
}

// UpdateRow overwrites the row at the given 1-based position in place.
func (c *Client) UpdateRow(ctx context.Context, position int, row []string) error {
	if c == nil || c.svc == nil {
		return errClientNotInitialized
	}
	if position < 1 {
		return fmt.Errorf("row position must be positive, got %d", position)
	}
	rng := fmt.Sprintf("'%s'!A%d:%s%d", c.worksheet, position, lastColumn, position)
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, valueRange(row)).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("updating row %d: %w", position, err)
	}
	return nil
}

// DeleteRow removes the row at the given 1-based position, shifting later rows up.
func (c *Client) DeleteRow(ctx context.Context, position int) error {
	if c == nil || c.svc == nil {
		return errClientNotInitialized
	}
	if position < 1 {
		return fmt.Errorf("row position must be positive, got %d", position)
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    c.worksheetID,
					Dimension:  "ROWS",
					StartIndex: int64(position - 1),
					EndIndex:   int64(position),
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("deleting row %d: %w", position, err)
	}
	return nil
}

// Reset clears the worksheet and writes the provided header as row 1.
// Destructive: every stored row is lost.
func (c *Client) Reset(ctx context.Context, header []string) error {
	if c == nil || c.svc == nil {
		return errClientNotInitialized
	}
	clearRange := fmt.Sprintf("'%s'", c.worksheet)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clearing worksheet: %w", err)
	}
	return c.AppendRow(ctx, header)
}

// Ping verifies the spreadsheet is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.svc == nil {
		return errClientNotInitialized
	}
	_, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("pinging spreadsheet: %w", err)
	}
	return nil
}

func (c *Client) allRange() string {
	return fmt.Sprintf("'%s'!A:%s", c.worksheet, lastColumn)
}

func valueRange(row []string) *sheets.ValueRange {
	cells := make([]interface{}, 0, len(row))
	for _, cell := range row {
		cells = append(cells, cell)
	}
	return &sheets.ValueRange{Values: [][]interface{}{cells}}
}
