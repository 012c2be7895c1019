package hypixel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Guild is an in-game Hypixel guild
type Guild struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// GetGuildByPlayer fetches the guild a player belongs to.
// ErrNotFound means the player is not in a guild.
func (c *Client) GetGuildByPlayer(ctx context.Context, playerUUID string) (*Guild, error) {
	return c.getGuild(ctx, "player", playerUUID)
}

// GetGuildByName fetches a guild by its display name
func (c *Client) GetGuildByName(ctx context.Context, name string) (*Guild, error) {
	return c.getGuild(ctx, "name", name)
}

// GetGuildByID fetches a guild by its id
func (c *Client) GetGuildByID(ctx context.Context, id string) (*Guild, error) {
	return c.getGuild(ctx, "id", id)
}

func (c *Client) getGuild(ctx context.Context, key, value string) (*Guild, error) {
	endpoint := fmt.Sprintf("%s/guild?%s=%s", c.baseURL, key, url.QueryEscape(value))

	body, err := c.getHypixel(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Guild *Guild `json:"guild"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode guild: %w", err)
	}
	if resp.Guild == nil {
		return nil, fmt.Errorf("guild with %s %s %w", key, value, ErrNotFound)
	}

	return resp.Guild, nil
}
