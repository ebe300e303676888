package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/talkroom/talkroom/internal/config"
	"github.com/talkroom/talkroom/internal/log"
	"github.com/talkroom/talkroom/internal/session"
	"github.com/talkroom/talkroom/internal/transport/api"
	"github.com/talkroom/talkroom/internal/transport/ws"
	"github.com/talkroom/talkroom/internal/ui"
)

var (
	flagConfig string
	flagServer string
	flagName   string
	flagRoom   string
)

var rootCmd = &cobra.Command{
	Use:   "talkroom",
	Short: "Terminal chat room client",
	Long:  "Joins a talkroom chat room, or creates one when no --room code is given.",
	RunE:  runClient,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "path to config file")
	flags.StringVar(&flagServer, "server", "", "room server base URL (overrides config)")
	flags.StringVar(&flagName, "name", "", "display name")
	flags.StringVar(&flagRoom, "room", "", "room code to join; empty creates a new room")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runClient(cmd *cobra.Command, args []string) error {
	cfg, _, err := config.Load(nil, flagConfig)
	if err != nil {
		return err
	}
	if flagServer != "" {
		cfg.Client.ServerURL = flagServer
	}

	// The TUI owns the terminal; logs go to a file.
	logger, err := log.NewFile(cfg.LogLevel, cfg.Client.LogPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	sess, err := session.Open(cfg.Client.IdentityPath, logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	name := strings.TrimSpace(flagName)
	if name == "" {
		name = sess.Name()
	}
	if name == "" {
		return fmt.Errorf("a display name is required: pass --name")
	}
	// The server scrubs and uppercases names; mirror the convention so
	// the optimistic echo label matches what other members see.
	sess.SetName(strings.ToUpper(name))

	ctx := context.Background()
	apiClient := api.New(cfg.Client.ServerURL)

	var room *api.RoomTicket
	if flagRoom == "" {
		room, err = apiClient.CreateRoom(ctx, name)
	} else {
		room, err = apiClient.JoinRoom(ctx, name, flagRoom)
	}
	if err != nil {
		return err
	}
	logger.Info().Str("room", room.Code).Str("name", sess.Name()).Msg("admitted to room")

	channel, err := ws.Dial(ctx, apiClient.WSURL(room.Ticket), logger)
	if err != nil {
		return fmt.Errorf("connect channel: %w", err)
	}
	defer channel.Close()

	model := ui.New(sess, channel.Events(), channel, room.Code, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
