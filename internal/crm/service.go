// Package crm implements the spreadsheet-backed CRM operations exposed as
// MCP tools: the client name registry, the qualification log, the lead
// directory and the service catalog.
//
// The package holds no state between calls. Every operation is a handful of
// sequential calls against the remote row store; concurrency control,
// retries and idempotency are deliberately left to the store and the caller
// (last write wins on row overwrites).
package crm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atlasagencia/crm-mcp/internal/config"
)

// RowStore is the remote tabular store the service persists into. Satisfied
// by sheets.Client; tests substitute an in-memory fake.
type RowStore interface {
	ReadRows(ctx context.Context, sheet string) ([][]string, error)
	AppendRow(ctx context.Context, sheet string, values []string) error
	WriteRow(ctx context.Context, sheet string, row int, values []string) error
}

// Service bundles the row store with the resolved configuration. One
// instance is built at startup and shared by every tool handler.
type Service struct {
	store  RowStore
	cfg    *config.Config
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewService builds a Service. The configured timezone is resolved once
// here; date stamps on written rows use it for the life of the process.
func NewService(store RowStore, cfg *config.Config, logger *slog.Logger) (*Service, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("crm: load timezone %q: %w", cfg.Timezone, err)
	}
	return &Service{
		store:  store,
		cfg:    cfg,
		logger: logger,
		loc:    loc,
		now:    time.Now,
	}, nil
}

// storeErr wraps any failure from the row store into the typed taxonomy.
func storeErr(op string, err error) error {
	return &StoreUnavailableError{Op: op, Err: err}
}

// cell returns the trimmed-for-absence cell at column i, or "" when the row
// is shorter than i+1. The Sheets API omits trailing empty cells.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
