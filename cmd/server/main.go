package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isep-edu/crm-gateway/internal/config"
	"github.com/isep-edu/crm-gateway/internal/crm"
	"github.com/isep-edu/crm-gateway/internal/logging"
	"github.com/isep-edu/crm-gateway/internal/mcp"
	"github.com/isep-edu/crm-gateway/internal/odoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logging. In stdio mode stdout carries the JSON-RPC stream,
	// so console logging moves to stderr.
	var console io.Writer = os.Stdout
	if cfg.Server.Transport == "stdio" {
		console = os.Stderr
	}
	logger := logging.NewLoggerWithConsole(cfg.Logging, console)
	slog.SetDefault(logger)

	// Initialize the remote client. Authentication happens lazily on
	// the first tool call.
	client, err := odoo.NewClient(cfg.Odoo, logger)
	if err != nil {
		slog.Error("Failed to initialize Odoo client", "error", err)
		os.Exit(1)
	}

	// Load the custom-field mapping, with optional deployment overrides
	fields, err := crm.LoadFieldMap(cfg.Fields.MappingFile)
	if err != nil {
		slog.Error("Failed to load field mapping", "error", err)
		os.Exit(1)
	}

	opts := crm.Options{
		DefaultLimit: cfg.Odoo.DefaultLimit,
		MaxLimit:     cfg.Odoo.MaxLimit,
	}

	server := mcp.NewServer(
		crm.NewLeadRepository(client, fields, logger, opts),
		crm.NewPartnerRepository(client, logger, opts),
		crm.NewCatalogRepository(client, logger, opts),
		crm.NewAccountingRepository(client, logger, opts),
		crm.NewDashboard(client, logger, cfg.Odoo.WonProbability),
		logger,
		mcp.Config{Address: cfg.Server.Address},
	)

	if cfg.Server.Transport == "stdio" {
		if err := server.ServeStdio(); err != nil {
			slog.Error("MCP server error", "error", err)
			os.Exit(1)
		}
		return
	}

	// SSE transport: serve in the background and wait for a signal
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("Received signal, shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			slog.Error("MCP server error", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		slog.Error("Failed to shutdown MCP server", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
