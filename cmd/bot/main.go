package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/flor3z/hypixel-link-bot/internal/bot"
	"github.com/flor3z/hypixel-link-bot/internal/config"
	flag "github.com/spf13/pflag"
)

func main() {
	envFile := flag.String("env-file", ".env", "dotenv file to load before reading the environment")
	logLevel := flag.String("log-level", "", "override LOG_LEVEL (debug, info, warn, error)")
	register := flag.Bool("register-commands", true, "overwrite the guild's slash commands on start")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	setupLogging(cfg.LogLevel)

	slog.Info("Starting Hypixel link bot", "guild", cfg.GuildID, "database", cfg.DatabaseDriver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := bot.New(cfg, bot.Options{RegisterCommands: *register})
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	if err := b.Start(ctx); err != nil {
		slog.Error("Failed to start bot", "error", err)
		b.Stop()
		os.Exit(1)
	}

	slog.Info("Bot is running. Press Ctrl+C to stop.")

	<-ctx.Done()

	slog.Info("Shutting down...")

	if err := b.Stop(); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}

	slog.Info("Bot stopped")
}

func setupLogging(level string) {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
