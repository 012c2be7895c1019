package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/flor3z/hypixel-link-bot/internal/command"
)

// interactionTimeout bounds one command, well inside the 15 minute
// lifetime of an interaction token
const interactionTimeout = 2 * time.Minute

var manageGuild int64 = discordgo.PermissionManageServer

// Slash command definitions
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "verify",
			Description: "Link your Discord account to your Hypixel account",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        command.OptionPlayer,
					Description: "Your Minecraft username",
					Required:    true,
				},
			},
		},
		{
			Name:                     "settings",
			Description:              "View or change the bot settings",
			DefaultMemberPermissions: &manageGuild,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        command.OptionCommand,
					Description: "view | verified_role <role> | guild_role <guild> <role> | reqs set|clear <guild> ...",
					Required:    true,
				},
			},
		},
		{
			Name:        "user",
			Description: "Show the Hypixel account linked to a Discord user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        command.OptionUser,
					Description: "The Discord user",
					Required:    true,
				},
			},
		},
		{
			Name:        "reqs",
			Description: "Check a player's SkyBlock profile against guild requirements",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        command.OptionPlayer,
					Description: "The Minecraft username",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        command.OptionProfile,
					Description: "SkyBlock profile name, defaults to the most recent",
				},
			},
		},
		{
			Name:        "help",
			Description: "List the bot's commands",
		},
	}
}

// createCommands registers all slash commands on the configured guild
func (b *Bot) createCommands() error {
	slog.Info("Registering slash commands", "guild", b.config.GuildID)

	registered, err := b.session.ApplicationCommandBulkOverwrite(
		b.session.State.User.ID,
		b.config.GuildID,
		commandDefinitions(),
	)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(registered))
	for _, cmd := range registered {
		names = append(names, cmd.Name)
	}
	slog.Info("Slash commands registered", "count", len(registered), "commands", names)
	return nil
}

// handleJob runs an acknowledged interaction and sends the answer as a
// followup. It runs on a dispatcher worker.
func (b *Bot) handleJob(i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(b.ctx, interactionTimeout)
	defer cancel()

	resp, err := b.run(ctx, i)
	if err != nil {
		slog.Error("Command failed", "command", i.ApplicationCommandData().Name, "user", invocation(i).User.ID, "error", err)
		resp = &command.Response{Content: "Error: " + err.Error()}
	}

	b.followup(i, resp)
}

func (b *Bot) run(ctx context.Context, i *discordgo.InteractionCreate) (resp *command.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	data := i.ApplicationCommandData()
	cmd, err := command.Parse(data.Name, optionValues(data))
	if err != nil {
		var verr *command.ValidationError
		if errors.As(err, &verr) {
			return &command.Response{Content: verr.Message}, nil
		}
		return nil, err
	}

	return b.engine.Execute(ctx, invocation(i), cmd)
}

func (b *Bot) followup(i *discordgo.InteractionCreate, resp *command.Response) {
	params := &discordgo.WebhookParams{
		Content: resp.Content,
		Embeds:  resp.Embeds,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	}
	if _, err := b.responder.FollowupMessageCreate(i.Interaction, true, params); err != nil {
		slog.Error("Failed to send followup", "id", i.ID, "error", err)
	}
}
