// Package mcpserver wires the CRM service to the MCP protocol boundary. It
// only registers tools, prompts and resources and maps results/errors into
// the structured payloads the protocol layer marshals — no business logic
// lives here.
package mcpserver

import (
	"context"
	"log/slog"

	"github.com/localrivet/gomcp/server"

	"github.com/atlasagencia/crm-mcp/internal/crm"
)

// ServerName is announced to clients during the MCP handshake.
const ServerName = "crm-mcp"

// New builds the MCP server with every CRM tool registered. The transport is
// chosen by the caller (main) before Run.
func New(svc *crm.Service, logger *slog.Logger) server.Server {
	h := &handlers{svc: svc, logger: logger}

	srv := server.NewServer(ServerName).
		Tool("set_client_name",
			"Registra o corrige el nombre de un cliente en la lista de clientes. "+
				"Sin 'row' agrega al final; con 'row' sobrescribe esa fila (1-based).",
			h.setClientName).
		Tool("save_qualification",
			"Guarda las respuestas de calificación de un cliente: una fila por pregunta "+
				"con fecha, cliente, pregunta, respuesta y puntaje.",
			h.saveQualification).
		Tool("verify_client",
			"Verifica si un cliente existe en el CRM buscando por teléfono, correo o usuario. "+
				"Al menos uno debe proporcionarse.",
			h.verifyClient).
		Tool("create_client",
			"Crea un nuevo cliente (lead) en el CRM con ID autogenerado.",
			h.createClient).
		Tool("update_client",
			"Actualiza los datos de un cliente existente. Solo actualiza los campos proporcionados.",
			h.updateClient).
		Tool("list_services",
			"Lista todos los servicios del catálogo.",
			h.listServices).
		Tool("get_service",
			"Busca un servicio del catálogo por nombre.",
			h.getService).
		Prompt("calificar_cliente",
			"Guía al asistente para calificar un lead y registrar el resultado.",
			server.User("Califica al cliente {{nombre}}: hazle las preguntas de calificación una por una, "+
				"asigna un puntaje de 1 a 5 a cada respuesta y al terminar guarda todo con save_qualification.")).
		Resource("crm://catalog",
			"Catálogo de servicios en formato JSON.",
			h.catalogResource)

	return srv
}

type handlers struct {
	svc    *crm.Service
	logger *slog.Logger
}

type setClientNameArgs struct {
	Name string `json:"name,omitempty" description:"Nombre completo del cliente"`
	Row  int    `json:"row,omitempty" description:"Fila a sobrescribir (1-based); omitir para agregar al final"`
}

func (h *handlers) setClientName(ctx *server.Context, args setClientNameArgs) (map[string]interface{}, error) {
	h.logger.Info("tool call", "tool", "set_client_name", "name", args.Name, "row", args.Row)

	name := optString(ctx, "name", args.Name)
	res, err := h.svc.SetClientName(context.Background(), name, args.Row)
	if err != nil {
		return h.failure("set_client_name", err, nil), nil
	}
	return success(map[string]interface{}{"row": res.Row, "name": res.Name}), nil
}

type saveQualificationArgs struct {
	Questions  []map[string]interface{} `json:"questions" required:"true" description:"Lista de preguntas respondidas: question, answer y score numérico"`
	ClientName string                   `json:"client_name,omitempty" description:"Nombre del cliente; omitir para usar el último registrado"`
}

func (h *handlers) saveQualification(ctx *server.Context, args saveQualificationArgs) (map[string]interface{}, error) {
	h.logger.Info("tool call", "tool", "save_qualification",
		"questions", len(args.Questions), "client_name", args.ClientName)

	questions, err := crm.ParseQuestions(args.Questions)
	if err != nil {
		return h.failure("save_qualification", err, nil), nil
	}
	clientName := optString(ctx, "client_name", args.ClientName)

	res, err := h.svc.SaveQualification(context.Background(), questions, clientName)
	if err != nil {
		// Partial writes are surfaced, not rolled back: the payload carries
		// how many rows landed before the failure.
		var extra map[string]interface{}
		if res != nil {
			extra = map[string]interface{}{"rows_written": res.Written, "date": res.Date}
		}
		return h.failure("save_qualification", err, extra), nil
	}
	return success(map[string]interface{}{
		"rows_written": res.Written,
		"date":         res.Date,
		"client_name":  res.ClientName,
	}), nil
}

type verifyClientArgs struct {
	Telefono string `json:"telefono,omitempty" description:"Número de teléfono con código de país (ej: +5491123456789)"`
	Correo   string `json:"correo,omitempty" description:"Correo electrónico del cliente"`
	Usuario  string `json:"usuario,omitempty" description:"Usuario o agente asignado"`
}

func (h *handlers) verifyClient(ctx *server.Context, args verifyClientArgs) (map[string]interface{}, error) {
	h.logger.Info("tool call", "tool", "verify_client",
		"telefono", args.Telefono, "correo", args.Correo, "usuario", args.Usuario)

	res, err := h.svc.VerifyClient(context.Background(), args.Telefono, args.Correo, args.Usuario)
	if err != nil {
		return h.failure("verify_client", err, nil), nil
	}
	payload := map[string]interface{}{"exists": res.Exists}
	if res.Exists {
		payload["client"] = res.Lead
		payload["matched_by"] = res.MatchedBy
	}
	return success(payload), nil
}

type createClientArgs struct {
	Nombre   string `json:"nombre" required:"true" description:"Nombre completo del cliente"`
	Canal    string `json:"canal" required:"true" description:"Canal de origen: whatsapp o web"`
	Telefono string `json:"telefono,omitempty" description:"Número de teléfono con código de país"`
	Correo   string `json:"correo,omitempty" description:"Correo electrónico del cliente"`
	Nota     string `json:"nota,omitempty" description:"Observaciones iniciales sobre el lead"`
	Usuario  string `json:"usuario,omitempty" description:"Usuario o agente que registra el lead"`
}

func (h *handlers) createClient(ctx *server.Context, args createClientArgs) (map[string]interface{}, error) {
	h.logger.Info("tool call", "tool", "create_client", "nombre", args.Nombre, "canal", args.Canal)

	lead, err := h.svc.CreateClient(context.Background(), crm.CreateLeadParams{
		Nombre:   args.Nombre,
		Canal:    args.Canal,
		Telefono: args.Telefono,
		Correo:   args.Correo,
		Nota:     args.Nota,
		Usuario:  args.Usuario,
	})
	if err != nil {
		return h.failure("create_client", err, nil), nil
	}
	return success(map[string]interface{}{
		"client_id": lead.ID,
		"nombre":    lead.Nombre,
		"canal":     lead.Canal,
	}), nil
}

type updateClientArgs struct {
	ClientID        string `json:"client_id" required:"true" description:"ID único del cliente (obtenido de verify_client)"`
	Nombre          string `json:"nombre,omitempty" description:"Actualizar nombre del cliente"`
	Telefono        string `json:"telefono,omitempty" description:"Actualizar número de teléfono"`
	Correo          string `json:"correo,omitempty" description:"Actualizar correo electrónico"`
	Tipo            string `json:"tipo,omitempty" description:"Tipo de cliente (Lead o Cliente)"`
	Estado          string `json:"estado,omitempty" description:"Estado del lead (Nuevo, Contactado, Calificado, Negociación, Ganado, Perdido)"`
	Nota            string `json:"nota,omitempty" description:"Notas de seguimiento"`
	Usuario         string `json:"usuario,omitempty" description:"Reasignar a otro usuario o agente"`
	FechaConversion string `json:"fecha_conversion,omitempty" description:"Fecha de conversión a cliente (YYYY-MM-DD HH:MM:SS)"`
}

func (h *handlers) updateClient(ctx *server.Context, args updateClientArgs) (map[string]interface{}, error) {
	h.logger.Info("tool call", "tool", "update_client", "client_id", args.ClientID)

	// Presence matters here: an explicitly empty field clears the cell,
	// an absent one leaves it alone.
	upd := crm.LeadUpdate{
		Nombre:          optString(ctx, "nombre", args.Nombre),
		Telefono:        optString(ctx, "telefono", args.Telefono),
		Correo:          optString(ctx, "correo", args.Correo),
		Tipo:            optString(ctx, "tipo", args.Tipo),
		Estado:          optString(ctx, "estado", args.Estado),
		Nota:            optString(ctx, "nota", args.Nota),
		Usuario:         optString(ctx, "usuario", args.Usuario),
		FechaConversion: optString(ctx, "fecha_conversion", args.FechaConversion),
	}
	res, err := h.svc.UpdateClient(context.Background(), args.ClientID, upd)
	if err != nil {
		return h.failure("update_client", err, nil), nil
	}
	return success(map[string]interface{}{
		"client_id":      res.ClientID,
		"updated_fields": res.UpdatedFields,
	}), nil
}

type noArgs struct{}

func (h *handlers) listServices(ctx *server.Context, _ noArgs) (map[string]interface{}, error) {
	h.logger.Info("tool call", "tool", "list_services")

	services, err := h.svc.ListServices(context.Background())
	if err != nil {
		return h.failure("list_services", err, nil), nil
	}
	return success(map[string]interface{}{"services": services, "count": len(services)}), nil
}

type getServiceArgs struct {
	Nombre string `json:"nombre" required:"true" description:"Nombre del servicio"`
}

func (h *handlers) getService(ctx *server.Context, args getServiceArgs) (map[string]interface{}, error) {
	h.logger.Info("tool call", "tool", "get_service", "nombre", args.Nombre)

	service, err := h.svc.GetService(context.Background(), args.Nombre)
	if err != nil {
		return h.failure("get_service", err, nil), nil
	}
	return success(map[string]interface{}{"service": service}), nil
}

func (h *handlers) catalogResource(ctx *server.Context, _ map[string]interface{}) (server.JSONResource, error) {
	services, err := h.svc.ListServices(context.Background())
	if err != nil {
		return server.JSONResource{}, err
	}
	return server.JSONResource{Data: map[string]interface{}{"services": services}}, nil
}

// failure logs and shapes a domain error into the structured payload the
// caller sees. Domain failures never become protocol-level errors.
func (h *handlers) failure(tool string, err error, extra map[string]interface{}) map[string]interface{} {
	h.logger.Error("tool failed", "tool", tool, "error", err)
	payload := errorPayload(err)
	for k, v := range extra {
		payload[k] = v
	}
	return payload
}

// optString reports the argument as a pointer when it was present in the
// call, nil when the caller omitted it. The decoded struct cannot tell ""
// apart from absent; the raw argument map can.
func optString(ctx *server.Context, key, decoded string) *string {
	if ctx == nil || ctx.Request == nil {
		return nil
	}
	if _, ok := ctx.Request.ToolArgs[key]; !ok {
		return nil
	}
	return &decoded
}
