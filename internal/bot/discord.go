package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/flor3z/hypixel-link-bot/internal/command"
)

// responder acknowledges interactions and answers them; *discordgo.Session
// implements it
type responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// sessionRoles is the Discord role API backed by a session
type sessionRoles struct {
	session *discordgo.Session
}

func (r *sessionRoles) ListRoles(ctx context.Context, guildID string) ([]*discordgo.Role, error) {
	return r.session.GuildRoles(guildID, discordgo.WithContext(ctx))
}

func (r *sessionRoles) GrantRole(ctx context.Context, guildID, userID, roleID string) error {
	return r.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
}

// userTag formats a user the way Hypixel stores Discord links: name#1234, or
// just the name for accounts without a discriminator
func userTag(u *discordgo.User) string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// invocation describes who ran an interaction and where
func invocation(i *discordgo.InteractionCreate) command.Invocation {
	u := i.User
	if i.Member != nil && i.Member.User != nil {
		u = i.Member.User
	}

	inv := command.Invocation{GuildID: i.GuildID}
	if u != nil {
		inv.User = command.Invoker{ID: u.ID, Tag: userTag(u)}
	}
	return inv
}

// optionValues flattens the options of a slash command into name -> value.
// User options are reduced to the user's ID.
func optionValues(data discordgo.ApplicationCommandInteractionData) map[string]string {
	values := make(map[string]string, len(data.Options))
	for _, opt := range data.Options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionString:
			values[opt.Name] = opt.StringValue()
		case discordgo.ApplicationCommandOptionUser:
			values[opt.Name] = opt.UserValue(nil).ID
		}
	}
	return values
}
