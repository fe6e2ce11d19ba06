package crm

import (
	"context"
	"strings"
)

// SetClientNameResult reports where a name landed in the client sheet.
type SetClientNameResult struct {
	Row  int    `json:"row"`
	Name string `json:"name"`
}

// SetClientName appends or overwrites a client display name in the client
// sheet, which is a plain ordered list (no header row).
//
// A nil name means the caller never supplied one and must be asked
// (NeedsInputError); a supplied name that trims to "" is a caller error.
// row == 0 appends at the end; a positive row overwrites that 1-based
// position. Rows past the current end are allowed — intermediate rows are
// left as blank cells, nothing is written to them, so the call stays a
// single write at the store's granularity.
func (s *Service) SetClientName(ctx context.Context, name *string, row int) (*SetClientNameResult, error) {
	const op = "set_client_name"

	if s.cfg.ClientSheet == "" {
		return nil, &ConfigurationError{Op: op, Setting: "client_sheet"}
	}
	if name == nil {
		return nil, &NeedsInputError{Op: op, Field: "name", Prompt: "¿Cuál es el nombre del cliente?"}
	}
	value := strings.TrimSpace(*name)
	if value == "" {
		return nil, &ValidationError{Op: op, Field: "name", Reason: "must not be empty"}
	}
	if row < 0 {
		return nil, &ValidationError{Op: op, Field: "row", Reason: "must be a positive integer"}
	}

	if row == 0 {
		rows, err := s.store.ReadRows(ctx, s.cfg.ClientSheet)
		if err != nil {
			return nil, storeErr(op, err)
		}
		target := len(rows) + 1
		if err := s.store.AppendRow(ctx, s.cfg.ClientSheet, []string{value}); err != nil {
			return nil, storeErr(op, err)
		}
		s.logger.Info("client name appended", "row", target, "name", value)
		return &SetClientNameResult{Row: target, Name: value}, nil
	}

	if err := s.store.WriteRow(ctx, s.cfg.ClientSheet, row, []string{value}); err != nil {
		return nil, storeErr(op, err)
	}
	s.logger.Info("client name written", "row", row, "name", value)
	return &SetClientNameResult{Row: row, Name: value}, nil
}

// lastClientName returns the most recently registered name: the first cell
// of the last non-empty row of the client sheet, "" when the sheet is empty.
func (s *Service) lastClientName(ctx context.Context) (string, error) {
	rows, err := s.store.ReadRows(ctx, s.cfg.ClientSheet)
	if err != nil {
		return "", err
	}
	for i := len(rows) - 1; i >= 0; i-- {
		if name := strings.TrimSpace(cell(rows[i], 0)); name != "" {
			return name, nil
		}
	}
	return "", nil
}
