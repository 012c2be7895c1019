package hypixel

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"
)

// SkyblockProfile is one of a player's SkyBlock profiles, seen from that player
type SkyblockProfile struct {
	ProfileID string
	CuteName  string
	Selected  bool
	LastSave  int64 // epoch milliseconds of the member's last save, 0 if unknown
}

// GetSkyblockProfiles fetches every SkyBlock profile the player is a member of
func (c *Client) GetSkyblockProfiles(ctx context.Context, playerUUID string) ([]SkyblockProfile, error) {
	endpoint := fmt.Sprintf("%s/skyblock/profiles?uuid=%s", c.baseURL, url.QueryEscape(playerUUID))

	body, err := c.getHypixel(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var profiles []SkyblockProfile
	gjson.GetBytes(body, "profiles").ForEach(func(_, p gjson.Result) bool {
		member := p.Get("members." + playerUUID)
		lastSave := member.Get("last_save").Int()
		if lastSave == 0 {
			lastSave = member.Get("profile.last_save").Int()
		}
		profiles = append(profiles, SkyblockProfile{
			ProfileID: p.Get("profile_id").String(),
			CuteName:  p.Get("cute_name").String(),
			Selected:  p.Get("selected").Bool(),
			LastSave:  lastSave,
		})
		return true
	})

	return profiles, nil
}
