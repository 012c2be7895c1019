package command

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/flor3z/hypixel-link-bot/internal/roles"
	"github.com/flor3z/hypixel-link-bot/internal/storage"
)

func (e *Engine) settings(ctx context.Context, inv Invocation, action SettingsAction) (*Response, error) {
	var resp *Response
	err := e.guard.Do(func(d *Deps) error {
		var err error
		switch a := action.(type) {
		case ViewSettings:
			resp, err = viewSettings(ctx, d)
		case SetVerifiedRole:
			resp, err = setVerifiedRole(ctx, d, inv.GuildID, a)
		case SetGuildRole:
			resp, err = setGuildRole(ctx, d, inv.GuildID, a)
		case ClearRequirement:
			err = d.Settings.UpdateSettings(ctx, func(s *storage.Settings) error {
				s.ClearRequirement(a.GuildName)
				return nil
			})
			resp = textResponse("Cleared requirements for %s", a.GuildName)
		case SetRequirement:
			err = d.Settings.UpdateSettings(ctx, func(s *storage.Settings) error {
				return s.SetRequirement(a.GuildName, a.Field, a.Amount)
			})
			resp = textResponse("Set %s requirement for %s to %d", a.Field, a.GuildName, a.Amount)
		default:
			return invalid("Invalid command")
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// roleExists reports whether roleID is one of the guild's roles
func roleExists(ctx context.Context, d *Deps, guildID, roleID string) (bool, error) {
	guildRoles, err := d.Roles.ListRoles(ctx, guildID)
	if err != nil {
		return false, fmt.Errorf("failed to list roles: %w", err)
	}
	for _, r := range guildRoles {
		if r.ID == roleID {
			return true, nil
		}
	}
	return false, nil
}

func setVerifiedRole(ctx context.Context, d *Deps, guildID string, a SetVerifiedRole) (*Response, error) {
	ok, err := roleExists(ctx, d, guildID, a.RoleID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return textResponse("Invalid role: %s", roles.Mention(a.RoleID)), nil
	}

	err = d.Settings.UpdateSettings(ctx, func(s *storage.Settings) error {
		s.VerifiedRole = a.RoleID
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Verified role changed", "role", a.RoleID)
	return textResponse("Set verified role to %s", roles.Mention(a.RoleID)), nil
}

func setGuildRole(ctx context.Context, d *Deps, guildID string, a SetGuildRole) (*Response, error) {
	ok, err := roleExists(ctx, d, guildID, a.RoleID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return textResponse("Invalid role: %s", roles.Mention(a.RoleID)), nil
	}

	guild, err := d.Game.GetGuildByName(ctx, a.GuildName)
	if err != nil {
		return textResponse("Invalid guild %s: %v", a.GuildName, err), nil
	}

	err = d.Settings.UpdateSettings(ctx, func(s *storage.Settings) error {
		s.SetGuildRole(guild.ID, a.RoleID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Guild role changed", "guild", guild.Name, "guildID", guild.ID, "role", a.RoleID)
	return textResponse("Set guild role for %s to %s", guild.Name, roles.Mention(a.RoleID)), nil
}

func viewSettings(ctx context.Context, d *Deps) (*Response, error) {
	s, err := d.Settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	if s.VerifiedRole == "" {
		sb.WriteString("**Verified role:** not set\n")
	} else {
		fmt.Fprintf(&sb, "**Verified role:** %s\n", roles.Mention(s.VerifiedRole))
	}

	sb.WriteString("\n**Guild roles:**\n")
	if len(s.GuildRoles) == 0 {
		sb.WriteString("none\n")
	}
	for _, id := range sortedKeys(s.GuildRoles) {
		guild, err := d.Game.GetGuildByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve guild %s: %w", id, err)
		}
		fmt.Fprintf(&sb, "%s: %s\n", guild.Name, roles.Mention(s.GuildRoles[id]))
	}

	sb.WriteString("\n**Guild requirements:**\n")
	if len(s.GuildReqs) == 0 {
		sb.WriteString("none\n")
	}
	for _, name := range sortedKeys(s.GuildReqs) {
		fmt.Fprintf(&sb, "%s: %s\n", name, formatRequirement(s.Requirement(name)))
	}

	return &Response{Content: sb.String()}, nil
}

func formatRequirement(r storage.GuildRequirement) string {
	return fmt.Sprintf("slayer %d, skills %d, catacombs %d, weight %d", r.Slayer, r.Skills, r.Catacombs, r.Weight)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
