// Package config defines the process configuration for the CRM MCP server.
//
// A Config is built once at startup and passed by reference into every
// component that needs it. Nothing in this package (or anywhere else in the
// repo) reads the environment after Load returns.
package config

// Config holds every external input the server needs: the spreadsheet
// backing the CRM, the worksheet names inside it, credentials, and the MCP
// transport to serve on.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogDir receives the server log file when running over stdio, where
	// stderr/stdout must stay clean for the protocol stream.
	LogDir string `koanf:"log_dir"`

	// Transport selects the MCP transport: stdio, http, sse or ws.
	Transport string `koanf:"transport"`

	// Addr is the listen address for the network transports, e.g. ":8000".
	Addr string `koanf:"addr"`

	// CredentialsFile points at the Google service-account JSON key.
	CredentialsFile string `koanf:"credentials_file"`

	// SpreadsheetID identifies the spreadsheet backing all sheets below.
	SpreadsheetID string `koanf:"spreadsheet_id"`

	// ClientSheet is the single-column list of registered client names.
	ClientSheet string `koanf:"client_sheet"`

	// QualificationSheet receives one row per answered question.
	QualificationSheet string `koanf:"qualification_sheet"`

	// LeadSheet is the full lead directory (Id, Nombre, Telefono, ...).
	LeadSheet string `koanf:"lead_sheet"`

	// CatalogSheet lists the services offered.
	CatalogSheet string `koanf:"catalog_sheet"`

	// Timezone is used when stamping dates on written rows.
	Timezone string `koanf:"timezone"`
}

// New returns a Config with defaults. The sheet names mirror the tabs the
// original spreadsheet ships with; spreadsheet ID and credentials have no
// sane default and must come from the environment or the config file.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogDir:             "./logs",
		Transport:          "stdio",
		Addr:               ":8000",
		CredentialsFile:    "credentials.json",
		ClientSheet:        "Clientes",
		QualificationSheet: "Calificaciones",
		LeadSheet:          "Lead",
		CatalogSheet:       "Services",
		Timezone:           "America/Argentina/Buenos_Aires",
	}
}
