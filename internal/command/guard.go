package command

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/flor3z/hypixel-link-bot/internal/hypixel"
	"github.com/flor3z/hypixel-link-bot/internal/storage"
)

// GameAPI is the Hypixel client as the commands use it
type GameAPI interface {
	UsernameToUUID(ctx context.Context, username string) (*hypixel.MojangProfile, error)
	GetPlayerByUUID(ctx context.Context, uuid string) (*hypixel.Player, error)
	GetGuildByPlayer(ctx context.Context, uuid string) (*hypixel.Guild, error)
	GetGuildByName(ctx context.Context, name string) (*hypixel.Guild, error)
	GetGuildByID(ctx context.Context, id string) (*hypixel.Guild, error)
	GetSkyblockProfiles(ctx context.Context, uuid string) ([]hypixel.SkyblockProfile, error)
}

// RoleAPI lists and grants Discord roles
type RoleAPI interface {
	ListRoles(ctx context.Context, guildID string) ([]*discordgo.Role, error)
	GrantRole(ctx context.Context, guildID, userID, roleID string) error
}

// SettingsStore persists the settings document
type SettingsStore interface {
	GetSettings(ctx context.Context) (*storage.Settings, error)
	UpdateSettings(ctx context.Context, fn func(*storage.Settings) error) error
}

// AccountStore persists linked accounts
type AccountStore interface {
	LinkAccount(ctx context.Context, a *storage.LinkedAccount) error
	GetAccountByDiscord(ctx context.Context, discordID string) (*storage.LinkedAccount, error)
	ListAccounts(ctx context.Context) ([]*storage.LinkedAccount, error)
}

// Deps is the shared configuration every command works against
type Deps struct {
	Game     GameAPI
	Roles    RoleAPI
	Settings SettingsStore
	Accounts AccountStore
}

// Guard serializes all access to Deps. Whoever holds it keeps it for the
// whole command, external calls included, so commands never interleave.
type Guard struct {
	mu   sync.Mutex
	deps Deps
}

// NewGuard wraps deps
func NewGuard(deps Deps) *Guard {
	return &Guard{deps: deps}
}

// Do runs fn while holding the lock. Acquisition waits as long as it takes.
func (g *Guard) Do(fn func(d *Deps) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(&g.deps)
}
