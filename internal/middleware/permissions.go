package middleware

import (
	"fmt"

	"barkeep/internal/command"

	"github.com/bwmarrin/discordgo"
)

// WithUserPermissionCheck enforces a command's UserPermissions on slash
// invocations. Administrators and the configured developer always pass;
// otherwise any one of the required permission bits is enough.
func WithUserPermissionCheck() command.Middleware {
	return func(c command.Command) command.Command {
		return command.Wrap(c, func(ctx interface{}) error {
			v, ok := ctx.(*command.SlashContext)
			if !ok {
				return c.Run(ctx)
			}

			required := c.UserPermissions()
			if len(required) == 0 {
				return c.Run(ctx)
			}

			e := v.Event
			if e.GuildID == "" || e.Member == nil || e.Member.User == nil {
				return c.Run(ctx)
			}

			if v.Config != nil && v.Config.DeveloperID != "" && e.Member.User.ID == v.Config.DeveloperID {
				return c.Run(ctx)
			}

			perms, err := v.Session.UserChannelPermissions(e.Member.User.ID, e.ChannelID)
			if err != nil {
				return fmt.Errorf("failed to get user permissions: %w", err)
			}
			if perms&discordgo.PermissionAdministrator != 0 {
				return c.Run(ctx)
			}

			for _, p := range required {
				if perms&p != 0 {
					return c.Run(ctx)
				}
			}

			return v.Session.InteractionRespond(e.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: "You need admin rights to use this command.",
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			})
		})
	}
}
