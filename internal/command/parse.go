package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flor3z/hypixel-link-bot/internal/roles"
	"github.com/flor3z/hypixel-link-bot/internal/storage"
)

// Command is one parsed slash command
type Command interface {
	command()
}

// Verify links the invoking user to a Hypixel player
type Verify struct {
	Player string
}

// Settings changes or shows the settings document
type Settings struct {
	Action SettingsAction
}

// Lookup shows the account linked to a Discord user
type Lookup struct {
	DiscordID string
}

// Reqs shows the configured guild requirements for one of a player's profiles
type Reqs struct {
	Player  string
	Profile string // empty selects the most recently played profile
}

// Help lists the available commands
type Help struct{}

func (Verify) command()   {}
func (Settings) command() {}
func (Lookup) command()   {}
func (Reqs) command()     {}
func (Help) command()     {}

// SettingsAction is one settings subcommand
type SettingsAction interface {
	settingsAction()
}

type ViewSettings struct{}

type SetVerifiedRole struct {
	RoleID string
}

type SetGuildRole struct {
	GuildName string
	RoleID    string
}

type ClearRequirement struct {
	GuildName string
}

type SetRequirement struct {
	GuildName string
	Field     storage.RequirementField
	Amount    int64
}

func (ViewSettings) settingsAction()     {}
func (SetVerifiedRole) settingsAction()  {}
func (SetGuildRole) settingsAction()     {}
func (ClearRequirement) settingsAction() {}
func (SetRequirement) settingsAction()   {}

// Option names used by the slash command definitions
const (
	OptionPlayer  = "player"
	OptionCommand = "command"
	OptionUser    = "user"
	OptionProfile = "profile"
)

// Parse builds a Command from a slash command name and its option values
func Parse(name string, options map[string]string) (Command, error) {
	switch name {
	case "verify":
		player := strings.TrimSpace(options[OptionPlayer])
		if player == "" {
			return nil, invalid("Missing player name")
		}
		return Verify{Player: player}, nil
	case "settings":
		action, err := ParseSettings(options[OptionCommand])
		if err != nil {
			return nil, err
		}
		return Settings{Action: action}, nil
	case "user":
		id := options[OptionUser]
		if id == "" {
			return nil, invalid("Missing user")
		}
		return Lookup{DiscordID: id}, nil
	case "reqs":
		player := strings.TrimSpace(options[OptionPlayer])
		if player == "" {
			return nil, invalid("Missing player name")
		}
		return Reqs{Player: player, Profile: strings.TrimSpace(options[OptionProfile])}, nil
	case "help":
		return Help{}, nil
	default:
		return nil, invalid("Unknown command")
	}
}

// ParseSettings parses the free-text argument of the settings command:
//
//	view
//	verified_role <@role>
//	guild_role <guild name...> <@role>
//	reqs clear <guild>
//	reqs set <guild> <slayer|skills|catacombs|weight> <amount>
func ParseSettings(text string) (SettingsAction, error) {
	args := strings.Fields(text)
	if len(args) == 0 {
		return nil, invalid("Invalid command")
	}

	switch strings.ToLower(args[0]) {
	case "view":
		if len(args) == 1 {
			return ViewSettings{}, nil
		}
	case "verified_role":
		if len(args) == 2 {
			roleID, err := parseRole(args[1])
			if err != nil {
				return nil, err
			}
			return SetVerifiedRole{RoleID: roleID}, nil
		}
	case "guild_role":
		if len(args) >= 3 {
			roleID, err := parseRole(args[len(args)-1])
			if err != nil {
				return nil, err
			}
			return SetGuildRole{
				GuildName: strings.Join(args[1:len(args)-1], " "),
				RoleID:    roleID,
			}, nil
		}
	case "reqs":
		return parseReqs(args[1:])
	}

	return nil, invalid("Invalid command")
}

func parseReqs(args []string) (SettingsAction, error) {
	if len(args) == 0 {
		return nil, invalid("Invalid command")
	}

	switch {
	case strings.EqualFold(args[0], "clear") && len(args) == 2:
		return ClearRequirement{GuildName: args[1]}, nil
	case strings.EqualFold(args[0], "set") && len(args) == 4:
		field, err := storage.ParseRequirementField(args[2])
		if err != nil {
			return nil, invalid("Invalid requirement type: %s", args[2])
		}
		amount, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			return nil, invalid("Invalid amount %s: %v", args[3], err)
		}
		if amount < 0 {
			return nil, invalid("Invalid amount %s: must not be negative", args[3])
		}
		return SetRequirement{GuildName: args[1], Field: field, Amount: amount}, nil
	}

	return nil, invalid("Invalid command")
}

func parseRole(mention string) (string, error) {
	roleID, err := roles.ParseMention(mention)
	if err != nil {
		return "", invalid("Invalid role: %s", mention)
	}
	return roleID, nil
}

// ValidationError is a malformed command; its message is shown to the user as is
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
