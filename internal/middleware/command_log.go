package middleware

import (
	"log"
	"time"

	"barkeep/internal/command"
	"barkeep/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// WithCommandLogger records slash executions to the guild's command
// history. Message commands fire on every chat line and are not logged.
func WithCommandLogger() command.Middleware {
	return func(c command.Command) command.Command {
		return command.Wrap(c, func(ctx interface{}) error {
			err := c.Run(ctx)

			if v, ok := ctx.(*command.SlashContext); ok && v.Storage != nil && v.Event.GuildID != "" {
				e := v.Event
				user := resolveUser(e)
				if logErr := v.Storage.AppendCommandHistory(e.GuildID, storage.CommandRecord{
					UserID:    user.ID,
					Username:  user.Username,
					Command:   c.Name(),
					ChannelID: e.ChannelID,
					Datetime:  time.Now(),
				}); logErr != nil {
					log.Printf("[WARN] Failed to log command /%s: %v", c.Name(), logErr)
				}
			}
			return err
		})
	}
}

func resolveUser(e *discordgo.InteractionCreate) *discordgo.User {
	if e.Member != nil && e.Member.User != nil {
		return e.Member.User
	}
	if e.User != nil {
		return e.User
	}
	return &discordgo.User{ID: "unknown", Username: "Unknown"}
}
