package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/flor3z/hypixel-link-bot/internal/command"
	"github.com/flor3z/hypixel-link-bot/internal/config"
	"github.com/flor3z/hypixel-link-bot/internal/hypixel"
	"github.com/flor3z/hypixel-link-bot/internal/poller"
	"github.com/flor3z/hypixel-link-bot/internal/storage"
)

// Bot represents the Discord bot instance
type Bot struct {
	config     *config.Config
	session    *discordgo.Session
	responder  responder
	repo       *storage.Repository
	engine     *command.Engine
	dispatcher *dispatcher
	poller     *poller.Poller

	registerCommands bool
	ctx              context.Context
}

// Options tweak how the bot starts
type Options struct {
	// RegisterCommands overwrites the guild's slash commands on start
	RegisterCommands bool
}

// New creates a new Bot instance
func New(cfg *config.Config, opts Options) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds

	repo, err := storage.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	guard := command.NewGuard(command.Deps{
		Game:     hypixel.NewClient(cfg.APIKey, cfg.APIRateLimit),
		Roles:    &sessionRoles{session: session},
		Settings: repo,
		Accounts: repo,
	})

	b := &Bot{
		config:           cfg,
		session:          session,
		responder:        session,
		repo:             repo,
		engine:           command.NewEngine(guard),
		registerCommands: opts.RegisterCommands,
		ctx:              context.Background(),
	}
	b.dispatcher = newDispatcher(cfg.Workers, b.handleJob)

	b.registerHandlers()

	return b, nil
}

// Start opens the Discord connection and starts background tasks
func (b *Bot) Start(ctx context.Context) error {
	// In-flight commands finish during Stop even after ctx is cancelled
	b.ctx = context.WithoutCancel(ctx)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	slog.Info("Connected to Discord", "user", b.session.State.User.Username)

	if b.registerCommands {
		if err := b.createCommands(); err != nil {
			return fmt.Errorf("failed to register commands: %w", err)
		}
	}

	if b.config.SyncInterval > 0 {
		b.poller = poller.New(b.engine, b.config.GuildID, b.config.SyncInterval)
		b.poller.Start(ctx)
	}

	return nil
}

// Stop gracefully shuts down the bot. Queued interactions are answered before
// storage is closed.
func (b *Bot) Stop() error {
	if b.poller != nil {
		b.poller.Stop()
	}

	// Closing the gateway stops new interactions; followups go over REST
	var closeErr error
	if b.session != nil {
		closeErr = b.session.Close()
	}

	b.dispatcher.stop()

	if b.repo != nil {
		if err := b.repo.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}

	return closeErr
}

// registerHandlers sets up Discord event handlers
func (b *Bot) registerHandlers() {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Bot is ready", "guilds", len(r.Guilds))
	})
}

// handleInteraction acknowledges a slash command right away, since Discord
// drops interactions not answered within 3 seconds, and queues it for the
// workers.
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	slog.Debug("Received command", "command", i.ApplicationCommandData().Name, "guild", i.GuildID)

	err := b.responder.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		slog.Error("Failed to defer interaction", "id", i.ID, "error", err)
		return
	}

	if !b.dispatcher.submit(i) {
		slog.Warn("Dropping interaction during shutdown", "id", i.ID)
		b.followup(i, &command.Response{Content: "Error: the bot is shutting down"})
	}
}
