package crm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLeads(svc *Service, store *fakeStore) {
	store.sheets[svc.cfg.LeadSheet] = [][]string{
		leadColumns,
		{"AB23CD", "Juan Pérez", "+54 9 11 2345-6789", "juan@ejemplo.com", "Lead", "Nuevo",
			"Interesado en servicios", "@agente1", "whatsapp", "2025-11-01 09:00:00", ""},
		{"XY98ZW", "María González", "3001234567", "Maria@Empresa.com", "Cliente", "Ganado",
			"", "@agente2", "web", "2025-10-15 14:00:00", "2025-11-02 10:00:00"},
	}
}

func TestVerifyClientByNormalizedPhone(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	seedLeads(svc, store)

	res, err := svc.VerifyClient(context.Background(), "54 (9) 11 2345 6789", "", "")
	require.NoError(t, err)
	assert.True(t, res.Exists)
	assert.Equal(t, "telefono", res.MatchedBy)
	assert.Equal(t, "AB23CD", res.Lead.ID)
	assert.Equal(t, "Juan Pérez", res.Lead.Nombre)
}

func TestVerifyClientByEmailCaseInsensitive(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	seedLeads(svc, store)

	res, err := svc.VerifyClient(context.Background(), "", "maria@empresa.com", "")
	require.NoError(t, err)
	assert.True(t, res.Exists)
	assert.Equal(t, "correo", res.MatchedBy)
	assert.Equal(t, "XY98ZW", res.Lead.ID)
}

func TestVerifyClientByUsuario(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	seedLeads(svc, store)

	res, err := svc.VerifyClient(context.Background(), "", "", "@agente2")
	require.NoError(t, err)
	assert.True(t, res.Exists)
	assert.Equal(t, "usuario", res.MatchedBy)
}

func TestVerifyClientNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	seedLeads(svc, store)

	res, err := svc.VerifyClient(context.Background(), "", "nadie@nunca.com", "")
	require.NoError(t, err)
	assert.False(t, res.Exists)
	assert.Nil(t, res.Lead)
}

func TestVerifyClientRequiresAnIdentifier(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	_, err := svc.VerifyClient(context.Background(), "", "", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateClientAppendsFullRow(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	store.sheets[svc.cfg.LeadSheet] = [][]string{leadColumns}

	lead, err := svc.CreateClient(context.Background(), CreateLeadParams{
		Nombre:   "Juan Pérez",
		Canal:    "whatsapp",
		Telefono: "3001234567",
		Correo:   "juan@ejemplo.com",
		Nota:     "Cliente interesado",
		Usuario:  "@juanperez",
	})
	require.NoError(t, err)
	assert.Len(t, lead.ID, 6)
	for _, r := range lead.ID {
		assert.True(t, strings.ContainsRune(idAlphabet, r), "unexpected ID character %q", r)
	}
	assert.Equal(t, "Lead", lead.Tipo)
	assert.Equal(t, "Nuevo", lead.Estado)
	assert.Equal(t, "2025-11-14 10:30:00", lead.FechaAdquisicion)

	rows := store.sheets[svc.cfg.LeadSheet]
	require.Len(t, rows, 2)
	assert.Equal(t, lead.ID, rows[1][0])
	assert.Equal(t, "Juan Pérez", rows[1][1])
	assert.Equal(t, "whatsapp", rows[1][8])
	assert.Len(t, rows[1], len(leadColumns))
}

func TestCreateClientRequiresNombreAndCanal(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	_, err := svc.CreateClient(context.Background(), CreateLeadParams{Canal: "web"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "nombre", verr.Field)

	_, err = svc.CreateClient(context.Background(), CreateLeadParams{Nombre: "Ana"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "canal", verr.Field)
}

func TestUpdateClientMergesOnlySuppliedFields(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	seedLeads(svc, store)

	res, err := svc.UpdateClient(context.Background(), "AB23CD", LeadUpdate{
		Correo: strptr("nuevo@empresa.com"),
		Estado: strptr("Calificado"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Correo", "Estado"}, res.UpdatedFields)

	row := store.sheets[svc.cfg.LeadSheet][1]
	assert.Equal(t, "Juan Pérez", row[1])
	assert.Equal(t, "nuevo@empresa.com", row[3])
	assert.Equal(t, "Calificado", row[5])
	assert.Equal(t, "whatsapp", row[8])
}

func TestUpdateClientUnknownID(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	seedLeads(svc, store)

	_, err := svc.UpdateClient(context.Background(), "NOPE99", LeadUpdate{Nota: strptr("x")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "client_id", verr.Field)
}

func TestUpdateClientWithNoFields(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	seedLeads(svc, store)

	_, err := svc.UpdateClient(context.Background(), "AB23CD", LeadUpdate{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fields", verr.Field)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5491123456789", normalizePhone("+54 9 11 2345-6789"))
	assert.Equal(t, "", normalizePhone("sin número"))
}

func TestNewClientIDIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newClientID()
		assert.Len(t, id, 6)
		assert.False(t, seen[id], "duplicate ID %s", id)
		seen[id] = true
	}
}
