package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/viajo-ai/viajo/internal/actions"
	"github.com/viajo-ai/viajo/internal/config"
	"github.com/viajo-ai/viajo/internal/db"
	mcpserver "github.com/viajo-ai/viajo/internal/mcp"
	"github.com/viajo-ai/viajo/internal/profile"
	"github.com/viajo-ai/viajo/internal/trip"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing trip actions as tools for AI agents like Claude Code.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}

		dbPath := filepath.Join(cfg.DataDir, "viajo.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		trips := trip.NewStore(database, cfg.Currency)
		profiles := profile.NewStore(database)
		router := actions.NewRouter(trips, profiles)

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "viajo MCP server started on stdio (db=%s)\n", dbPath)

		srv := mcpserver.NewServer(router)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
