package hypixel

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// MojangProfile is a username resolved to its stable account id
type MojangProfile struct {
	UUID     string // undashed, lower case
	Username string // canonical capitalisation
}

// Player is a Hypixel player document
type Player struct {
	UUID        string
	DisplayName string

	raw gjson.Result
}

// StringProperty returns the string at a dotted path inside the player
// document, e.g. "socialMedia.links.DISCORD"
func (p *Player) StringProperty(path string) (string, bool) {
	v := p.raw.Get(path)
	if !v.Exists() || v.Type != gjson.String {
		return "", false
	}
	return v.String(), true
}

// UsernameToUUID resolves a Minecraft username through the Mojang API
func (c *Client) UsernameToUUID(ctx context.Context, username string) (*MojangProfile, error) {
	endpoint := fmt.Sprintf("%s/users/profiles/minecraft/%s", c.mojangURL, url.PathEscape(username))

	body, err := c.getRaw(ctx, endpoint, false)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("player %s %w", username, ErrNotFound)
		}
		return nil, err
	}

	res := gjson.ParseBytes(body)
	id, err := uuid.Parse(res.Get("id").String())
	if err != nil {
		return nil, fmt.Errorf("invalid uuid in Mojang response: %w", err)
	}

	return &MojangProfile{
		UUID:     strings.ReplaceAll(id.String(), "-", ""),
		Username: res.Get("name").String(),
	}, nil
}

// GetPlayerByUUID fetches a player's Hypixel document
func (c *Client) GetPlayerByUUID(ctx context.Context, playerUUID string) (*Player, error) {
	endpoint := fmt.Sprintf("%s/player?uuid=%s", c.baseURL, url.QueryEscape(playerUUID))

	body, err := c.getHypixel(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	player := gjson.GetBytes(body, "player")
	if !player.IsObject() {
		return nil, fmt.Errorf("player %s has never joined Hypixel: %w", playerUUID, ErrNotFound)
	}
	return PlayerFromJSON([]byte(player.Raw))
}

// PlayerFromJSON builds a Player from a raw player object
func PlayerFromJSON(data []byte) (*Player, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid player document")
	}
	player := gjson.ParseBytes(data)
	if !player.IsObject() {
		return nil, fmt.Errorf("player document is not an object")
	}
	return &Player{
		UUID:        player.Get("uuid").String(),
		DisplayName: player.Get("displayname").String(),
		raw:         player,
	}, nil
}
