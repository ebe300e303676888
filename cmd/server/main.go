package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/talkroom/talkroom/internal/config"
	"github.com/talkroom/talkroom/internal/log"
	"github.com/talkroom/talkroom/internal/server"
	"github.com/talkroom/talkroom/internal/server/httpapi"
	"github.com/talkroom/talkroom/internal/server/store"
	"github.com/talkroom/talkroom/internal/server/ticket"
)

var (
	flagConfig string
	flagAddr   string
	flagDBPath string
)

var rootCmd = &cobra.Command{
	Use:   "talkroom-server",
	Short: "Realtime chat room server",
	RunE:  runServer,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "path to config file")
	flags.StringVar(&flagAddr, "addr", "", "HTTP listen address (overrides config)")
	flags.StringVar(&flagDBPath, "db", "", "SQLite database path (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	bootstrapLog := log.New("info")

	cfg, configPath, err := config.Load(bootstrapLog, flagConfig)
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
	if flagDBPath != "" {
		cfg.Server.DBPath = flagDBPath
	}

	logger := log.New(cfg.LogLevel)
	logger.Info().Str("config", configPath).Str("addr", cfg.Server.Addr).Msg("starting talkroom server")

	st, err := store.New(cfg.Server.DBPath)
	if err != nil {
		return err
	}
	logger.Info().Str("db_path", cfg.Server.DBPath).Msg("database initialized")

	ticketCfg := &ticket.Config{
		Secret: []byte(cfg.Server.TicketSecret),
		Issuer: "talkroom",
		TTL:    time.Hour,
	}

	hub := server.NewHub(st, logger)
	srv := httpapi.NewServer(hub, st, ticketCfg, cfg.Server, logger)
	app := server.NewApp(srv, hub, st, cfg.Server.ShutdownTimeout, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
