package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/flor3z/hypixel-link-bot/internal/hypixel"
	"github.com/flor3z/hypixel-link-bot/internal/storage"
)

const embedColor = 0x55FF55

func (e *Engine) lookup(ctx context.Context, cmd Lookup) (*Response, error) {
	var resp *Response
	err := e.guard.Do(func(d *Deps) error {
		account, err := d.Accounts.GetAccountByDiscord(ctx, cmd.DiscordID)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("<@%s> %w", cmd.DiscordID, ErrNotLinked)
		}
		if err != nil {
			return fmt.Errorf("failed to look up linked account: %w", err)
		}

		resp = textResponse("<@%s> is linked to **%s** (`%s`)", account.DiscordID, account.Username, account.UUID)
		return nil
	})
	return resp, err
}

func (e *Engine) reqs(ctx context.Context, cmd Reqs) (*Response, error) {
	var resp *Response
	err := e.guard.Do(func(d *Deps) error {
		player, err := d.Game.UsernameToUUID(ctx, cmd.Player)
		if err != nil {
			return err
		}

		profiles, err := d.Game.GetSkyblockProfiles(ctx, player.UUID)
		if err != nil {
			return err
		}
		profile, ok := SelectProfile(profiles, cmd.Profile)
		if !ok {
			return fmt.Errorf("%w for %s", ErrNoProfile, player.Username)
		}

		settings, err := d.Settings.GetSettings(ctx)
		if err != nil {
			return err
		}

		var sb strings.Builder
		if len(settings.GuildReqs) == 0 {
			sb.WriteString("No guild requirements are configured.")
		}
		for _, name := range sortedKeys(settings.GuildReqs) {
			fmt.Fprintf(&sb, "**%s**: %s\n", name, formatRequirement(settings.Requirement(name)))
		}

		resp = &Response{Embeds: []*discordgo.MessageEmbed{{
			Title:       fmt.Sprintf("Requirements for %s", player.Username),
			Description: sb.String(),
			Color:       embedColor,
			Footer: &discordgo.MessageEmbedFooter{
				Text: "Profile: " + profile.CuteName,
			},
			Timestamp: e.now().Format(time.RFC3339),
		}}}
		return nil
	})
	return resp, err
}

// SelectProfile picks the profile named name (case-insensitive), or when name
// is empty the one the player saved most recently. Ties go to the profile the
// API marks as selected, then to the earliest in the list.
func SelectProfile(profiles []hypixel.SkyblockProfile, name string) (hypixel.SkyblockProfile, bool) {
	if name != "" {
		for _, p := range profiles {
			if strings.EqualFold(p.CuteName, name) {
				return p, true
			}
		}
		return hypixel.SkyblockProfile{}, false
	}

	best := -1
	for i, p := range profiles {
		if best == -1 {
			best = i
			continue
		}
		b := profiles[best]
		if p.LastSave > b.LastSave || (p.LastSave == b.LastSave && p.Selected && !b.Selected) {
			best = i
		}
	}
	if best == -1 {
		return hypixel.SkyblockProfile{}, false
	}
	return profiles[best], true
}
