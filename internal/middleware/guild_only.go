package middleware

import (
	"barkeep/internal/command"

	"github.com/bwmarrin/discordgo"
)

// WithGuildOnly rejects slash invocations outside a guild and silently
// drops guildless messages (DMs have no bar).
func WithGuildOnly() command.Middleware {
	return func(c command.Command) command.Command {
		return command.Wrap(c, func(ctx interface{}) error {
			switch v := ctx.(type) {
			case *command.SlashContext:
				if v.Event.GuildID == "" {
					return v.Session.InteractionRespond(v.Event.Interaction, &discordgo.InteractionResponse{
						Type: discordgo.InteractionResponseChannelMessageWithSource,
						Data: &discordgo.InteractionResponseData{
							Content: "You must be in a server to use this command.",
							Flags:   discordgo.MessageFlagsEphemeral,
						},
					})
				}
			case *command.MessageContext:
				if v.Event.GuildID == "" {
					return nil
				}
			}
			return c.Run(ctx)
		})
	}
}
