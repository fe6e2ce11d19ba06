package crm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(svc *Service, store *fakeStore) {
	store.sheets[svc.cfg.CatalogSheet] = [][]string{
		{"Nombre", "Descripción", "Precio"},
		{"Sitio Web", "Desarrollo de sitio institucional", "1200"},
		{"Chatbot", "Bot de atención por WhatsApp", "800"},
	}
}

func TestListServices(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	seedCatalog(svc, store)

	services, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Sitio Web", services[0]["Nombre"])
	assert.Equal(t, "800", services[1]["Precio"])
}

func TestGetServiceCaseInsensitive(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	seedCatalog(svc, store)

	service, err := svc.GetService(context.Background(), "chatbot")
	require.NoError(t, err)
	assert.Equal(t, "Chatbot", service["Nombre"])
}

func TestGetServiceNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	seedCatalog(svc, store)

	_, err := svc.GetService(context.Background(), "Drones")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestGetServiceRequiresName(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	_, err := svc.GetService(context.Background(), " ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestListServicesEmptySheet(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	services, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, services)
}
