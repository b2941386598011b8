package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/viajo-ai/viajo/internal/actions"
	"github.com/viajo-ai/viajo/internal/bots"
	"github.com/viajo-ai/viajo/internal/config"
	"github.com/viajo-ai/viajo/internal/db"
	"github.com/viajo-ai/viajo/internal/llm"
	"github.com/viajo-ai/viajo/internal/orchestrator"
	"github.com/viajo-ai/viajo/internal/profile"
	"github.com/viajo-ai/viajo/internal/server"
	"github.com/viajo-ai/viajo/internal/session"
	"github.com/viajo-ai/viajo/internal/trip"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the viajo HTTP server",
	Long:  `Starts the viajo server with the chat endpoint, trip API, action router, and WhatsApp webhook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if servePort != 0 {
			cfg.Port = servePort
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

		provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		srv := server.New(server.Config{
			Port:     cfg.Port,
			DataDir:  cfg.DataDir,
			AllowAll: true,
		}, database)

		registerAllRoutes(srv, cfg, provider)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "viajo server v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  Provider: %s (%s)\n", cfg.Provider, cfg.Model)

		return srv.Start()
	},
}

// registerAllRoutes wires up the feature routes on the server router.
func registerAllRoutes(srv *server.Server, cfg *config.Config, provider llm.Provider) {
	r := srv.Router()
	database := srv.Database()

	trips := trip.NewStore(database, cfg.Currency)
	sessions := session.NewStore(database)
	profiles := profile.NewStore(database)

	trip.RegisterRoutes(r, trips)

	orch := orchestrator.New(trips, sessions, profiles, provider, cfg.Model)
	orchestrator.RegisterRoutes(r, orch)

	router := actions.NewRouter(trips, profiles)
	actions.RegisterRoutes(r, router)

	processor := bots.NewProcessor(orch)
	gateway := bots.NewGateway(processor)
	whatsapp := bots.NewWhatsAppHandler(gateway, bots.BotConfig{
		VerifyToken: cfg.Bot.VerifyToken,
		AppSecret:   cfg.Bot.AppSecret,
	})
	bots.RegisterRoutes(r, whatsapp)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
