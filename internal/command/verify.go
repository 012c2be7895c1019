package command

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/flor3z/hypixel-link-bot/internal/identity"
	"github.com/flor3z/hypixel-link-bot/internal/roles"
	"github.com/flor3z/hypixel-link-bot/internal/storage"
)

// StorageErrorMessage is shown when the link could not be written
const StorageErrorMessage = "Error inserting into database"

func (e *Engine) verify(ctx context.Context, inv Invocation, cmd Verify) (*Response, error) {
	var resp *Response
	err := e.guard.Do(func(d *Deps) error {
		id, err := identity.NewResolver(d.Game).Resolve(ctx, cmd.Player)
		if err != nil {
			return err
		}

		if !strings.EqualFold(id.ClaimedTag, inv.User.Tag) {
			resp = textResponse("Your Discord tag is %s but the in-game Discord tag is %s", inv.User.Tag, id.ClaimedTag)
			return nil
		}

		account := &storage.LinkedAccount{
			UUID:        id.UUID,
			Username:    id.Username,
			DiscordID:   inv.User.ID,
			LastUpdated: e.now().UnixMilli(),
		}
		if err := d.Accounts.LinkAccount(ctx, account); err != nil {
			slog.Error("Failed to link account", "uuid", id.UUID, "user", inv.User.ID, "error", err)
			resp = textResponse(StorageErrorMessage)
			return nil
		}

		if err := grantRoles(ctx, d, inv.GuildID, inv.User.ID, id.UUID); err != nil {
			return err
		}

		slog.Info("Linked account", "uuid", id.UUID, "username", id.Username, "user", inv.User.ID)
		resp = textResponse("Successfully linked %s to %s", inv.User.Tag, id.Username)
		return nil
	})
	return resp, err
}

// grantRoles gives a linked member the verified role and then, when their
// in-game guild is mapped, the guild's role. The guild lookup is optional;
// grants are not.
func grantRoles(ctx context.Context, d *Deps, guildID, userID, playerUUID string) error {
	settings, err := d.Settings.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	verified, err := roles.Verified(settings)
	if err != nil {
		return err
	}
	if err := grant(ctx, d, guildID, userID, verified); err != nil {
		return err
	}

	guild, err := d.Game.GetGuildByPlayer(ctx, playerUUID)
	if err != nil {
		slog.Debug("No guild for player", "uuid", playerUUID, "error", err)
		guild = nil
	}
	if g, ok := roles.Guild(settings, guild); ok {
		return grant(ctx, d, guildID, userID, g)
	}
	return nil
}

func grant(ctx context.Context, d *Deps, guildID, userID string, g roles.Grant) error {
	if err := d.Roles.GrantRole(ctx, guildID, userID, g.RoleID); err != nil {
		return fmt.Errorf("failed to grant %s role %s: %w", g.Kind, g.RoleID, err)
	}
	slog.Debug("Granted role", "kind", g.Kind, "role", g.RoleID, "user", userID)
	return nil
}

// Resync re-applies the planned roles for every linked account in guildID.
// Per-account failures are logged and skipped.
func (e *Engine) Resync(ctx context.Context, guildID string) error {
	return e.guard.Do(func(d *Deps) error {
		accounts, err := d.Accounts.ListAccounts(ctx)
		if err != nil {
			return fmt.Errorf("failed to list linked accounts: %w", err)
		}

		synced := 0
		for _, a := range accounts {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := grantRoles(ctx, d, guildID, a.DiscordID, a.UUID); err != nil {
				slog.Warn("Failed to resync roles", "username", a.Username, "user", a.DiscordID, "error", err)
				continue
			}
			synced++
		}

		slog.Info("Resynced roles", "accounts", len(accounts), "synced", synced)
		return nil
	})
}
