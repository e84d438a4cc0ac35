package core

import (
	"fmt"
	"strings"

	"barkeep/internal/command"
	"barkeep/internal/discord"
	"barkeep/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

// LogCommand shows a guild's recent pours and command executions.
type LogCommand struct{}

func (c *LogCommand) Name() string        { return "log" }
func (c *LogCommand) Description() string { return "Show recent pours and command usage" }
func (c *LogCommand) Group() string       { return "core" }
func (c *LogCommand) Category() string    { return "ℹ️ Information" }
func (c *LogCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionAdministrator}
}

func (c *LogCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "pours",
				Description: "Recent drinks granted in this server",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "commands",
				Description: "Recent slash command usage",
			},
		},
	}
}

const logTail = 15

func (c *LogCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashContext)
	if !ok {
		return nil
	}

	e := v.Event
	options := e.ApplicationCommandData().Options
	which := "pours"
	if len(options) > 0 {
		which = options[0].Name
	}

	switch which {
	case "pours":
		records, err := v.Storage.FetchPourLog(e.GuildID)
		if err != nil {
			return fmt.Errorf("fetch pour log: %w", err)
		}
		if len(records) == 0 {
			return discord.RespondEphemeral(v.Session, e, "Nothing has been poured here yet.")
		}
		if len(records) > logTail {
			records = records[len(records)-logTail:]
		}

		var lines []string
		for i := len(records) - 1; i >= 0; i-- {
			r := records[i]
			name := r.DrinkID
			if item, ok := v.Catalog.Get(r.DrinkID); ok {
				name = item.Name
			}
			lines = append(lines, fmt.Sprintf("`%s` **%s** → <@%s> *(%s)*",
				r.At.Format("Jan 02 15:04"), name, r.UserID, r.Kind))
		}
		return discord.RespondEmbedEphemeral(v.Session, e, &discordgo.MessageEmbed{
			Title:       "🍾 Recent pours",
			Description: strings.Join(lines, "\n"),
		})

	case "commands":
		records, err := v.Storage.FetchCommandHistory(e.GuildID)
		if err != nil {
			return fmt.Errorf("fetch command history: %w", err)
		}
		if len(records) == 0 {
			return discord.RespondEphemeral(v.Session, e, "No commands recorded yet.")
		}
		if len(records) > logTail {
			records = records[len(records)-logTail:]
		}

		var lines []string
		for i := len(records) - 1; i >= 0; i-- {
			r := records[i]
			lines = append(lines, fmt.Sprintf("`%s` /%s — %s",
				r.Datetime.Format("Jan 02 15:04"), r.Command, r.Username))
		}
		return discord.RespondEmbedEphemeral(v.Session, e, &discordgo.MessageEmbed{
			Title:       "📋 Recent commands",
			Description: strings.Join(lines, "\n"),
		})

	default:
		return discord.RespondEphemeral(v.Session, e, "Unknown subcommand.")
	}
}

func init() {
	command.Register(
		&LogCommand{},
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
