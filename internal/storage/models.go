package storage

import (
	"fmt"
	"strings"
)

// LinkedAccount maps a Discord user to a Hypixel player
type LinkedAccount struct {
	UUID        string
	Username    string
	DiscordID   string
	LastUpdated int64 // epoch milliseconds
}

// RequirementField names one threshold of a GuildRequirement
type RequirementField string

const (
	FieldSlayer    RequirementField = "slayer"
	FieldSkills    RequirementField = "skills"
	FieldCatacombs RequirementField = "catacombs"
	FieldWeight    RequirementField = "weight"
)

// RequirementFields lists every field in display order
var RequirementFields = []RequirementField{FieldSlayer, FieldSkills, FieldCatacombs, FieldWeight}

// ParseRequirementField matches a field name case-insensitively
func ParseRequirementField(s string) (RequirementField, error) {
	for _, f := range RequirementFields {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown requirement field: %s", s)
}

// GuildRequirement holds the thresholds an in-game guild asks of its members
type GuildRequirement struct {
	Slayer    int64 `json:"slayer"`
	Skills    int64 `json:"skills"`
	Catacombs int64 `json:"catacombs"`
	Weight    int64 `json:"weight"`
}

// Set updates a single field, leaving the others untouched
func (r *GuildRequirement) Set(field RequirementField, amount int64) error {
	switch field {
	case FieldSlayer:
		r.Slayer = amount
	case FieldSkills:
		r.Skills = amount
	case FieldCatacombs:
		r.Catacombs = amount
	case FieldWeight:
		r.Weight = amount
	default:
		return fmt.Errorf("unknown requirement field: %s", field)
	}
	return nil
}

// Settings is the single per-deployment settings document
type Settings struct {
	VerifiedRole string                      `json:"verified_role"`
	GuildRoles   map[string]string           `json:"guild_roles"` // in-game guild ID -> role ID
	GuildReqs    map[string]GuildRequirement `json:"guild_reqs"`  // guild name -> thresholds
}

// normalize replaces nil maps so callers can write into them
func (s *Settings) normalize() {
	if s.GuildRoles == nil {
		s.GuildRoles = make(map[string]string)
	}
	if s.GuildReqs == nil {
		s.GuildReqs = make(map[string]GuildRequirement)
	}
}

// SetGuildRole maps an in-game guild to a Discord role
func (s *Settings) SetGuildRole(guildID, roleID string) {
	s.normalize()
	s.GuildRoles[guildID] = roleID
}

// Requirement returns the thresholds for a guild, all zero when none are set
func (s *Settings) Requirement(guildName string) GuildRequirement {
	return s.GuildReqs[guildName]
}

// SetRequirement changes one field of a guild's requirements, creating the entry if needed
func (s *Settings) SetRequirement(guildName string, field RequirementField, amount int64) error {
	s.normalize()
	req := s.GuildReqs[guildName]
	if err := req.Set(field, amount); err != nil {
		return err
	}
	s.GuildReqs[guildName] = req
	return nil
}

// ClearRequirement removes a guild's requirements; absent entries are ignored
func (s *Settings) ClearRequirement(guildName string) {
	delete(s.GuildReqs, guildName)
}
