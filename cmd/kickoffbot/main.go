package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/omarshaarawi/kickoffbot/internal/api/feed"
	"github.com/omarshaarawi/kickoffbot/internal/bot"
	"github.com/omarshaarawi/kickoffbot/internal/config"
	"github.com/omarshaarawi/kickoffbot/internal/repository/bolt"
	"github.com/omarshaarawi/kickoffbot/internal/repository/jsonfile"
	"github.com/omarshaarawi/kickoffbot/internal/repository/memory"
	"github.com/omarshaarawi/kickoffbot/internal/scheduler"
	"github.com/omarshaarawi/kickoffbot/internal/service"
	"github.com/omarshaarawi/kickoffbot/internal/web"
)

var flagDryRun bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kickoffbot",
		Short:         "Post today's match schedule to a Telegram channel",
		Long:          "Fetches the schedule feed, keeps today's matches in the selected leagues and posts them once per day.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runOnce,
	}
	cmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Print the message instead of sending it and keep history in memory")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the daily trigger, Telegram commands and the health endpoint",
		RunE:  runServe,
	})

	return cmd
}

func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded", "error", err)
	}
	return config.New()
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, closeStore, err := openHistory(cfg.History)
	if err != nil {
		return err
	}
	defer closeStore()

	var sink service.Sink
	if flagDryRun {
		sink = bot.NewDryRunSink(cmd.OutOrStdout())
	} else {
		sink = bot.NewLazySink(cfg.TelegramBot)
	}

	notifier, err := newNotifier(cfg, sink, store)
	if err != nil {
		return err
	}

	outcome, err := notifier.Run(cmd.Context())
	if err != nil {
		return err
	}
	slog.Info("Run finished", "outcome", outcome.String())
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, closeStore, err := openHistory(cfg.History)
	if err != nil {
		return err
	}
	defer closeStore()

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot)
	if err != nil {
		return err
	}

	var sink service.Sink = telegramBot
	if flagDryRun {
		sink = bot.NewDryRunSink(cmd.OutOrStdout())
	}

	notifier, err := newNotifier(cfg, sink, store)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(notifier, cfg.Scheduler)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      web.NewRouter(notifier),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := telegramBot.Start(ctx, bot.NewHandler(notifier)); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newNotifier(cfg *config.Config, sink service.Sink, store service.HistoryStore) (*service.Notifier, error) {
	location, err := cfg.Scheduler.Location()
	if err != nil {
		return nil, err
	}

	feedAPI := feed.NewAPI(feed.NewClient(cfg.Feed))
	return service.NewNotifier(feedAPI, sink, store, cfg.Message, location), nil
}

func openHistory(cfg config.History) (service.HistoryStore, func(), error) {
	if flagDryRun {
		return memory.NewRepository(), func() {}, nil
	}

	switch cfg.Backend {
	case config.HistoryBackendBolt:
		repo, err := bolt.NewRepository(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening history: %w", err)
		}
		return repo, func() { closeQuietly(repo) }, nil
	default:
		return jsonfile.NewRepository(cfg.Path), func() {}, nil
	}
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Error("Error closing history", "error", err)
	}
}
