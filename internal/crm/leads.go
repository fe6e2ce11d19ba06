package crm

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

// Lead is one row of the lead sheet. The mapstructure tags match the sheet's
// header row verbatim.
type Lead struct {
	ID               string `json:"client_id" mapstructure:"Id"`
	Nombre           string `json:"nombre" mapstructure:"Nombre"`
	Telefono         string `json:"telefono" mapstructure:"Telefono"`
	Correo           string `json:"correo" mapstructure:"Correo"`
	Tipo             string `json:"tipo" mapstructure:"Tipo"`
	Estado           string `json:"estado" mapstructure:"Estado"`
	Nota             string `json:"nota" mapstructure:"Nota"`
	Usuario          string `json:"usuario" mapstructure:"Usuario"`
	Canal            string `json:"canal" mapstructure:"Canal"`
	FechaAdquisicion string `json:"fecha_adquisicion" mapstructure:"Fecha Adquisición"`
	FechaConversion  string `json:"fecha_conversion" mapstructure:"Fecha Conversion"`
}

// leadColumns is the fixed column order of the lead sheet.
var leadColumns = []string{
	"Id", "Nombre", "Telefono", "Correo", "Tipo", "Estado",
	"Nota", "Usuario", "Canal", "Fecha Adquisición", "Fecha Conversion",
}

// VerifyResult is the outcome of a lead lookup.
type VerifyResult struct {
	Exists    bool   `json:"exists"`
	Lead      *Lead  `json:"lead,omitempty"`
	MatchedBy string `json:"matched_by,omitempty"`
}

// VerifyClient looks a lead up by phone, e-mail or assigned user. At least
// one identifier is required. Phone numbers are compared digits-only,
// e-mail case-insensitively, the user verbatim.
func (s *Service) VerifyClient(ctx context.Context, telefono, correo, usuario string) (*VerifyResult, error) {
	const op = "verify_client"

	if s.cfg.LeadSheet == "" {
		return nil, &ConfigurationError{Op: op, Setting: "lead_sheet"}
	}
	if telefono == "" && correo == "" && usuario == "" {
		return nil, &ValidationError{
			Op: op, Field: "telefono|correo|usuario",
			Reason: "at least one identifier is required",
		}
	}

	leads, err := s.readLeads(ctx, op)
	if err != nil {
		return nil, err
	}

	wantPhone := normalizePhone(telefono)
	for i := range leads {
		lead := &leads[i]
		var matchedBy string
		switch {
		case telefono != "" && normalizePhone(lead.Telefono) == wantPhone:
			matchedBy = "telefono"
		case correo != "" && strings.EqualFold(lead.Correo, correo):
			matchedBy = "correo"
		case usuario != "" && lead.Usuario == usuario:
			matchedBy = "usuario"
		}
		if matchedBy != "" {
			s.logger.Info("lead found", "matched_by", matchedBy, "client_id", lead.ID)
			return &VerifyResult{Exists: true, Lead: lead, MatchedBy: matchedBy}, nil
		}
	}

	s.logger.Info("lead not found", "telefono", telefono, "correo", correo, "usuario", usuario)
	return &VerifyResult{Exists: false}, nil
}

// CreateLeadParams carries the caller-supplied fields of a new lead.
type CreateLeadParams struct {
	Nombre   string
	Canal    string
	Telefono string
	Correo   string
	Nota     string
	Usuario  string
}

// CreateClient appends a new lead with an autogenerated 6-character ID,
// Tipo "Lead", Estado "Nuevo" and the acquisition timestamp in the
// configured timezone. One append, never an overwrite.
func (s *Service) CreateClient(ctx context.Context, p CreateLeadParams) (*Lead, error) {
	const op = "create_client"

	if s.cfg.LeadSheet == "" {
		return nil, &ConfigurationError{Op: op, Setting: "lead_sheet"}
	}
	if strings.TrimSpace(p.Nombre) == "" {
		return nil, &ValidationError{Op: op, Field: "nombre", Reason: "is required"}
	}
	if strings.TrimSpace(p.Canal) == "" {
		return nil, &ValidationError{Op: op, Field: "canal", Reason: "is required"}
	}

	lead := &Lead{
		ID:               newClientID(),
		Nombre:           strings.TrimSpace(p.Nombre),
		Telefono:         p.Telefono,
		Correo:           p.Correo,
		Tipo:             "Lead",
		Estado:           "Nuevo",
		Nota:             p.Nota,
		Usuario:          p.Usuario,
		Canal:            p.Canal,
		FechaAdquisicion: s.now().In(s.loc).Format("2006-01-02 15:04:05"),
	}

	row := []string{
		lead.ID, lead.Nombre, lead.Telefono, lead.Correo, lead.Tipo, lead.Estado,
		lead.Nota, lead.Usuario, lead.Canal, lead.FechaAdquisicion, lead.FechaConversion,
	}
	if err := s.store.AppendRow(ctx, s.cfg.LeadSheet, row); err != nil {
		return nil, storeErr(op, err)
	}

	s.logger.Info("lead created", "client_id", lead.ID, "nombre", lead.Nombre, "canal", lead.Canal)
	return lead, nil
}

// LeadUpdate carries the optional fields of update_client; nil fields are
// left untouched in the sheet.
type LeadUpdate struct {
	Nombre          *string
	Telefono        *string
	Correo          *string
	Tipo            *string
	Estado          *string
	Nota            *string
	Usuario         *string
	FechaConversion *string
}

// UpdateLeadResult names the columns an update touched.
type UpdateLeadResult struct {
	ClientID      string   `json:"client_id"`
	UpdatedFields []string `json:"updated_fields"`
}

// UpdateClient finds a lead by its ID and overwrites only the supplied
// fields, writing the merged row back in one call. An unknown ID is a caller
// error, not a store failure.
func (s *Service) UpdateClient(ctx context.Context, clientID string, u LeadUpdate) (*UpdateLeadResult, error) {
	const op = "update_client"

	if s.cfg.LeadSheet == "" {
		return nil, &ConfigurationError{Op: op, Setting: "lead_sheet"}
	}
	if strings.TrimSpace(clientID) == "" {
		return nil, &ValidationError{Op: op, Field: "client_id", Reason: "is required"}
	}

	rows, err := s.store.ReadRows(ctx, s.cfg.LeadSheet)
	if err != nil {
		return nil, storeErr(op, err)
	}

	// Row 1 is the header; data starts at row 2.
	for i := 1; i < len(rows); i++ {
		if cell(rows[i], 0) != clientID {
			continue
		}

		merged := make([]string, len(leadColumns))
		for col := range merged {
			merged[col] = cell(rows[i], col)
		}

		var updated []string
		apply := func(col int, name string, v *string) {
			if v != nil {
				merged[col] = *v
				updated = append(updated, name)
			}
		}
		apply(1, "Nombre", u.Nombre)
		apply(2, "Telefono", u.Telefono)
		apply(3, "Correo", u.Correo)
		apply(4, "Tipo", u.Tipo)
		apply(5, "Estado", u.Estado)
		apply(6, "Nota", u.Nota)
		apply(7, "Usuario", u.Usuario)
		apply(10, "Fecha Conversion", u.FechaConversion)

		if len(updated) == 0 {
			return nil, &ValidationError{Op: op, Field: "fields", Reason: "no fields to update"}
		}
		if err := s.store.WriteRow(ctx, s.cfg.LeadSheet, i+1, merged); err != nil {
			return nil, storeErr(op, err)
		}

		s.logger.Info("lead updated", "client_id", clientID, "fields", updated)
		return &UpdateLeadResult{ClientID: clientID, UpdatedFields: updated}, nil
	}

	return nil, &ValidationError{Op: op, Field: "client_id", Reason: "no lead with ID " + clientID}
}

// readLeads decodes the lead sheet into structs using the header row as
// mapstructure keys.
func (s *Service) readLeads(ctx context.Context, op string) ([]Lead, error) {
	records, err := s.readRecords(ctx, s.cfg.LeadSheet)
	if err != nil {
		return nil, storeErr(op, err)
	}
	leads := make([]Lead, 0, len(records))
	for _, rec := range records {
		var lead Lead
		if err := mapstructure.Decode(rec, &lead); err != nil {
			return nil, storeErr(op, err)
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

// readRecords reads a header-rowed sheet into one map per data row, keyed by
// the header cells. Blank rows are skipped.
func (s *Service) readRecords(ctx context.Context, sheet string) ([]map[string]string, error) {
	rows, err := s.store.ReadRows(ctx, sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	headers := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec := make(map[string]string, len(headers))
		for col, h := range headers {
			rec[h] = cell(row, col)
		}
		records = append(records, rec)
	}
	return records, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// normalizePhone strips everything but digits so "+54 9 11 2345-6789" and
// "5491123456789" compare equal.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// idAlphabet omits ambiguous characters (0/O, 1/I/L) like the original's
// short-ID generator.
const idAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// newClientID derives a 6-character ID from fresh UUID bytes.
func newClientID() string {
	u := uuid.New()
	b := make([]byte, 6)
	for i := range b {
		b[i] = idAlphabet[int(u[i])%len(idAlphabet)]
	}
	return string(b)
}
