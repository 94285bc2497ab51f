package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the MCP tools over stdio",
	Long: `Serve the drift-guard tools over the Model Context Protocol.

The server speaks stdio, so it is meant to be launched by an editor or
agent host with the working directory set to the repository under check.
Exposed tools:
  - repo_contract_validate
  - drift_check
  - verify_run`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, cleanup, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	defer cleanup()

	return server.ServeStdio(s)
}
