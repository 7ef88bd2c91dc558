// Command mcp serves the BaristaBox expert flows over MCP on stdio.
//
// Usage:
//
//	mcp    # register in an MCP client as a stdio server
package main

import (
	"context"
	"fmt"
	"os"

	"baristabox-be/internal/bootstrap"
	"baristabox-be/internal/config"
	"baristabox-be/internal/mcptools"
	"baristabox-be/internal/pkg/logger"

	"github.com/mark3labs/mcp-go/server"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	ctx := context.Background()

	// stdout belongs to the protocol; logs go to the file only.
	container, err := bootstrap.NewContainer(ctx, cfg, bootstrap.Options{
		Logger: logger.NewIsolatedLogger(cfg.App.LogFilePath),
	})
	if err != nil {
		return fmt.Errorf("bootstrapping: %w", err)
	}
	defer container.Close()

	if _, err := container.IndexService.Rebuild(ctx); err != nil {
		return fmt.Errorf("building indexes: %w", err)
	}

	s := mcptools.NewServer(version, mcptools.Flows{
		Sommelier: container.Sommelier,
		Brewer:    container.Brewer,
		Doctor:    container.Doctor,
		Problems:  container.ProblemClassifier,
	})
	return server.ServeStdio(s)
}
