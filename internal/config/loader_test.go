package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithSpreadsheetFromEnv(t *testing.T) {
	t.Setenv("CRM_SPREADSHEET_ID", "sheet-123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sheet-123", cfg.SpreadsheetID)
	assert.Equal(t, "stdio", cfg.Transport)
	assert.Equal(t, "Clientes", cfg.ClientSheet)
	assert.Equal(t, "Calificaciones", cfg.QualificationSheet)
	assert.Equal(t, "Lead", cfg.LeadSheet)
	assert.Equal(t, "America/Argentina/Buenos_Aires", cfg.Timezone)
}

func TestLoadFailsWithoutSpreadsheetID(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spreadsheet_id")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"spreadsheet_id: from-file\ntransport: http\naddr: \":9000\"\n"), 0o644))

	t.Setenv("CRM_CONFIG", path)
	t.Setenv("CRM_SPREADSHEET_ID", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.SpreadsheetID)
	assert.Equal(t, "http", cfg.Transport)
	assert.Equal(t, ":9000", cfg.Addr)
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	t.Setenv("CRM_SPREADSHEET_ID", "sheet-123")
	t.Setenv("CRM_TRANSPORT", "carrier-pigeon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transport")
}

func TestLoadSheetNamesFromEnv(t *testing.T) {
	t.Setenv("CRM_SPREADSHEET_ID", "sheet-123")
	t.Setenv("CRM_CLIENT_SHEET", "Names")
	t.Setenv("CRM_QUALIFICATION_SHEET", "Scores")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Names", cfg.ClientSheet)
	assert.Equal(t, "Scores", cfg.QualificationSheet)
}
