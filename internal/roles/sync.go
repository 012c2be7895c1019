// Package roles decides which Discord roles a verified player receives.
package roles

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/flor3z/hypixel-link-bot/internal/hypixel"
	"github.com/flor3z/hypixel-link-bot/internal/storage"
)

// GrantKind says why a role is granted
type GrantKind string

const (
	GrantVerified GrantKind = "verified"
	GrantGuild    GrantKind = "guild"
)

// Grant is one role to add to a member
type Grant struct {
	RoleID string
	Kind   GrantKind
}

// ErrNoVerifiedRole means settings have no verified role to grant
var ErrNoVerifiedRole = errors.New("verified role is not configured")

// Verified returns the grant every verified player receives. It must be
// applied before Guild.
func Verified(settings *storage.Settings) (Grant, error) {
	if settings.VerifiedRole == "" {
		return Grant{}, ErrNoVerifiedRole
	}
	return Grant{RoleID: settings.VerifiedRole, Kind: GrantVerified}, nil
}

// Guild returns the role mapped to the player's in-game guild. guild is nil
// when the player has no guild or the lookup failed.
func Guild(settings *storage.Settings, guild *hypixel.Guild) (Grant, bool) {
	if guild == nil {
		return Grant{}, false
	}
	roleID, ok := settings.GuildRoles[guild.ID]
	if !ok || roleID == "" {
		return Grant{}, false
	}
	return Grant{RoleID: roleID, Kind: GrantGuild}, true
}

// ParseMention extracts a role id from <@&id>, <@id> or a bare id
func ParseMention(s string) (string, error) {
	id := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(id, "<@&") && strings.HasSuffix(id, ">"):
		id = id[3 : len(id)-1]
	case strings.HasPrefix(id, "<@") && strings.HasSuffix(id, ">"):
		id = id[2 : len(id)-1]
	}

	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return "", fmt.Errorf("not a role mention: %s", s)
	}
	return id, nil
}

// Mention formats a role id as a Discord role mention
func Mention(roleID string) string {
	return "<@&" + roleID + ">"
}
