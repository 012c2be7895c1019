package command

import "github.com/bwmarrin/discordgo"

func helpResponse() *Response {
	return &Response{Embeds: []*discordgo.MessageEmbed{{
		Title: "Help",
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "/verify <player>", Value: "Link your Hypixel account. Set your Discord tag in-game first."},
			{Name: "/user <@user>", Value: "Show the Hypixel account linked to a user"},
			{Name: "/reqs <player> [profile]", Value: "Show guild requirements for a SkyBlock profile"},
			{Name: "/settings view", Value: "Show the current settings"},
			{Name: "/settings verified_role <@role>", Value: "Set the role given to every verified user"},
			{Name: "/settings guild_role <guild> <@role>", Value: "Give members of an in-game guild a role"},
			{Name: "/settings reqs set <guild> <slayer|skills|catacombs|weight> <amount>", Value: "Set a guild requirement"},
			{Name: "/settings reqs clear <guild>", Value: "Remove a guild's requirements"},
			{Name: "/help", Value: "Show this message"},
		},
	}}}
}
