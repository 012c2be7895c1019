// Package identity resolves a Minecraft username to a Hypixel player and the
// Discord tag that player published in-game.
package identity

import (
	"context"
	"fmt"

	"github.com/flor3z/hypixel-link-bot/internal/hypixel"
)

// DiscordLinkProperty is where Hypixel keeps the Discord tag a player set in-game
const DiscordLinkProperty = "socialMedia.links.DISCORD"

// Lookup is the part of the Hypixel client the resolver needs
type Lookup interface {
	UsernameToUUID(ctx context.Context, username string) (*hypixel.MojangProfile, error)
	GetPlayerByUUID(ctx context.Context, uuid string) (*hypixel.Player, error)
}

// Identity is a player whose claimed Discord tag is known
type Identity struct {
	UUID       string
	Username   string
	ClaimedTag string
}

// NotLinkedError reports a player who exists but has no Discord tag set in-game
type NotLinkedError struct {
	Username string
}

func (e *NotLinkedError) Error() string {
	return fmt.Sprintf("%s is not linked on Hypixel", e.Username)
}

// Resolver turns usernames into identities. It never writes anywhere.
type Resolver struct {
	api Lookup
}

// NewResolver creates a Resolver backed by api
func NewResolver(api Lookup) *Resolver {
	return &Resolver{api: api}
}

// Resolve looks the username up and reads the Discord tag from the player's
// profile. Upstream errors are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, username string) (*Identity, error) {
	profile, err := r.api.UsernameToUUID(ctx, username)
	if err != nil {
		return nil, err
	}

	player, err := r.api.GetPlayerByUUID(ctx, profile.UUID)
	if err != nil {
		return nil, err
	}

	tag, ok := player.StringProperty(DiscordLinkProperty)
	if !ok {
		return nil, &NotLinkedError{Username: profile.Username}
	}

	return &Identity{
		UUID:       profile.UUID,
		Username:   profile.Username,
		ClaimedTag: tag,
	}, nil
}
