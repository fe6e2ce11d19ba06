// Package sheets wraps the Google Sheets values API behind the small
// row-oriented contract the CRM layer consumes: read a sheet, append a row,
// overwrite a row. Nothing is cached and nothing is retried; every call is
// a single round trip against the remote spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Client talks to one spreadsheet. It is safe for concurrent use; the
// underlying service serializes nothing, so concurrent writers interleave at
// whatever granularity the Sheets API provides.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// New authenticates with the given service-account key file and binds the
// client to a single spreadsheet.
func New(ctx context.Context, spreadsheetID, credentialsFile string) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// ReadRows returns every row of the named sheet, cells stringified in
// spreadsheet order. Absent trailing cells are absent from the row slice;
// callers index defensively.
func (c *Client) ReadRows(ctx context.Context, sheet string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, quoteSheet(sheet)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read %q: %w", sheet, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = cellString(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow appends one row after the last non-empty row of the sheet.
func (c *Client) AppendRow(ctx context.Context, sheet string, values []string) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{toCells(values)}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, quoteSheet(sheet), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append to %q: %w", sheet, err)
	}
	return nil
}

// WriteRow overwrites the 1-based row of the sheet starting at column A.
// Rows between the current end of the sheet and the target stay blank; the
// API materializes them as empty cells.
func (c *Client) WriteRow(ctx context.Context, sheet string, row int, values []string) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{toCells(values)}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rowRange(sheet, row), vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: write %q row %d: %w", sheet, row, err)
	}
	return nil
}

// quoteSheet wraps a sheet name in single quotes so names with spaces or
// non-ASCII characters survive A1 notation. Embedded quotes are doubled.
func quoteSheet(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

// rowRange builds the A1 range addressing one whole row, e.g. 'Lead'!5:5.
func rowRange(sheet string, row int) string {
	return fmt.Sprintf("%s!%d:%d", quoteSheet(sheet), row, row)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func cellString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
