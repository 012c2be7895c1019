package command

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/flor3z/hypixel-link-bot/internal/hypixel"
	"github.com/flor3z/hypixel-link-bot/internal/storage"
)

type fakeGame struct {
	profiles      map[string]*hypixel.MojangProfile // lower-case username
	players       map[string]string                 // uuid -> player JSON
	guildByPlayer map[string]*hypixel.Guild
	guilds        []*hypixel.Guild
	skyblock      map[string][]hypixel.SkyblockProfile
	guildErr      error

	guildLookups int
}

func (f *fakeGame) UsernameToUUID(ctx context.Context, username string) (*hypixel.MojangProfile, error) {
	p, ok := f.profiles[strings.ToLower(username)]
	if !ok {
		return nil, fmt.Errorf("player %s %w", username, hypixel.ErrNotFound)
	}
	return p, nil
}

func (f *fakeGame) GetPlayerByUUID(ctx context.Context, uuid string) (*hypixel.Player, error) {
	doc, ok := f.players[uuid]
	if !ok {
		return nil, hypixel.ErrNotFound
	}
	return hypixel.PlayerFromJSON([]byte(doc))
}

func (f *fakeGame) GetGuildByPlayer(ctx context.Context, uuid string) (*hypixel.Guild, error) {
	f.guildLookups++
	if f.guildErr != nil {
		return nil, f.guildErr
	}
	g, ok := f.guildByPlayer[uuid]
	if !ok {
		return nil, hypixel.ErrNotFound
	}
	return g, nil
}

func (f *fakeGame) GetGuildByName(ctx context.Context, name string) (*hypixel.Guild, error) {
	for _, g := range f.guilds {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
	}
	return nil, fmt.Errorf("guild with name %s %w", name, hypixel.ErrNotFound)
}

func (f *fakeGame) GetGuildByID(ctx context.Context, id string) (*hypixel.Guild, error) {
	for _, g := range f.guilds {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, fmt.Errorf("guild with id %s %w", id, hypixel.ErrNotFound)
}

func (f *fakeGame) GetSkyblockProfiles(ctx context.Context, uuid string) ([]hypixel.SkyblockProfile, error) {
	return f.skyblock[uuid], nil
}

type fakeRoles struct {
	roles    []*discordgo.Role
	listErr  error
	grantErr error
	granted  []string
}

func (f *fakeRoles) ListRoles(ctx context.Context, guildID string) ([]*discordgo.Role, error) {
	return f.roles, f.listErr
}

func (f *fakeRoles) GrantRole(ctx context.Context, guildID, userID, roleID string) error {
	if f.grantErr != nil {
		return f.grantErr
	}
	f.granted = append(f.granted, roleID)
	return nil
}

// fakeSettings keeps the document as JSON so tests can compare raw bytes
type fakeSettings struct {
	doc []byte
}

func newFakeSettings(s *storage.Settings) *fakeSettings {
	doc, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	return &fakeSettings{doc: doc}
}

func (f *fakeSettings) GetSettings(ctx context.Context) (*storage.Settings, error) {
	s := &storage.Settings{}
	if err := json.Unmarshal(f.doc, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (f *fakeSettings) UpdateSettings(ctx context.Context, fn func(*storage.Settings) error) error {
	s, err := f.GetSettings(ctx)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	doc, err := json.Marshal(s)
	if err != nil {
		return err
	}
	f.doc = doc
	return nil
}

type fakeAccounts struct {
	rows    []storage.LinkedAccount
	linkErr error
}

func (f *fakeAccounts) LinkAccount(ctx context.Context, a *storage.LinkedAccount) error {
	if f.linkErr != nil {
		return f.linkErr
	}
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.UUID == a.UUID || r.Username == a.Username || r.DiscordID == a.DiscordID {
			continue
		}
		kept = append(kept, r)
	}
	f.rows = append(kept, *a)
	return nil
}

func (f *fakeAccounts) GetAccountByDiscord(ctx context.Context, discordID string) (*storage.LinkedAccount, error) {
	for _, r := range f.rows {
		if r.DiscordID == discordID {
			a := r
			return &a, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeAccounts) ListAccounts(ctx context.Context) ([]*storage.LinkedAccount, error) {
	out := make([]*storage.LinkedAccount, 0, len(f.rows))
	for i := range f.rows {
		a := f.rows[i]
		out = append(out, &a)
	}
	return out, nil
}
