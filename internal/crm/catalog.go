package crm

import (
	"context"
	"strings"
)

// ListServices returns every row of the service catalog as header-keyed
// records. The catalog's columns are whatever the sheet defines; they pass
// through untyped.
func (s *Service) ListServices(ctx context.Context) ([]map[string]string, error) {
	const op = "list_services"

	if s.cfg.CatalogSheet == "" {
		return nil, &ConfigurationError{Op: op, Setting: "catalog_sheet"}
	}
	records, err := s.readRecords(ctx, s.cfg.CatalogSheet)
	if err != nil {
		return nil, storeErr(op, err)
	}
	return records, nil
}

// GetService looks a catalog entry up by its "Nombre" column,
// case-insensitively. A missing service is reported as a validation error so
// the caller can correct the name.
func (s *Service) GetService(ctx context.Context, nombre string) (map[string]string, error) {
	const op = "get_service"

	if s.cfg.CatalogSheet == "" {
		return nil, &ConfigurationError{Op: op, Setting: "catalog_sheet"}
	}
	if strings.TrimSpace(nombre) == "" {
		return nil, &ValidationError{Op: op, Field: "nombre", Reason: "is required"}
	}
	records, err := s.readRecords(ctx, s.cfg.CatalogSheet)
	if err != nil {
		return nil, storeErr(op, err)
	}
	for _, rec := range records {
		if strings.EqualFold(rec["Nombre"], nombre) {
			return rec, nil
		}
	}
	return nil, &ValidationError{Op: op, Field: "nombre", Reason: "no service named " + nombre}
}
