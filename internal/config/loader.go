package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CRM_CONFIG is set
//  3. env (prefix CRM_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CRM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: CRM_SPREADSHEET_ID, CRM_CLIENT_SHEET, ...
	// Keys map to the koanf tags on Config, underscores preserved.
	envProvider := env.Provider("CRM_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "crm_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet_id must not be empty (set CRM_SPREADSHEET_ID)")
	}
	if cfg.CredentialsFile == "" {
		return nil, errors.New("credentials_file must not be empty")
	}
	switch cfg.Transport {
	case "stdio", "http", "sse", "ws":
	default:
		return nil, errors.New("transport must be one of stdio, http, sse, ws")
	}
	return &cfg, nil
}
