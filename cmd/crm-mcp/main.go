// Command crm-mcp serves the spreadsheet-backed CRM over the Model Context
// Protocol. Configuration comes from CRM_* environment variables or the YAML
// file named by CRM_CONFIG; see internal/config.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atlasagencia/crm-mcp/internal/config"
	"github.com/atlasagencia/crm-mcp/internal/crm"
	"github.com/atlasagencia/crm-mcp/internal/mcpserver"
	"github.com/atlasagencia/crm-mcp/internal/sheets"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "crm-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)

	store, err := sheets.New(context.Background(), cfg.SpreadsheetID, cfg.CredentialsFile)
	if err != nil {
		return err
	}

	svc, err := crm.NewService(store, cfg, logger)
	if err != nil {
		return err
	}

	srv := mcpserver.New(svc, logger)
	logFile := filepath.Join(cfg.LogDir, "crm-mcp.log")
	switch cfg.Transport {
	case "http":
		srv.AsHTTP(cfg.Addr)
	case "sse":
		srv.AsSSE(cfg.Addr)
	case "ws":
		srv.AsWebsocket(cfg.Addr)
	default:
		srv.AsStdio(logFile)
	}

	logger.Info("starting server",
		"transport", cfg.Transport,
		"addr", cfg.Addr,
		"spreadsheet_id", cfg.SpreadsheetID,
	)
	return srv.Run()
}

// newLogger writes to stderr for the network transports. Over stdio the
// protocol owns the standard streams, so logs go to a file under LogDir
// instead (same file the transport layer logs to).
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var w io.Writer = os.Stderr
	if cfg.Transport == "stdio" {
		if err := os.MkdirAll(cfg.LogDir, 0o755); err == nil {
			path := filepath.Join(cfg.LogDir, "crm-mcp.log")
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				w = f
			}
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
