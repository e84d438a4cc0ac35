package bar

import (
	"fmt"

	"barkeep/internal/command"
	"barkeep/internal/discord"
	"barkeep/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

// ManageBarCommand binds, unbinds and inspects the guild's bar channel.
// Admin-only: binding decides where drinks get poured.
type ManageBarCommand struct{}

func (c *ManageBarCommand) Name() string        { return "bar" }
func (c *ManageBarCommand) Description() string { return "Manage the bar channel for this server" }
func (c *ManageBarCommand) Group() string       { return "bar" }
func (c *ManageBarCommand) Category() string    { return "🍸 Bar" }
func (c *ManageBarCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionAdministrator}
}

func (c *ManageBarCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "Make this channel the bar",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "unset",
				Description: "Close the bar for this server",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Show which channel is the bar",
			},
		},
	}
}

func (c *ManageBarCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashContext)
	if !ok {
		return nil
	}

	e := v.Event
	options := e.ApplicationCommandData().Options
	if len(options) == 0 {
		return discord.RespondEphemeral(v.Session, e, "Pick a subcommand: set, unset or status.")
	}

	switch options[0].Name {
	case "set":
		if err := v.Storage.SetBarChannel(e.GuildID, e.ChannelID); err != nil {
			return fmt.Errorf("set bar channel: %w", err)
		}
		return discord.RespondEmbed(v.Session, e, &discordgo.MessageEmbed{
			Title:       "🍸 The bar is open",
			Description: fmt.Sprintf("<#%s> is now the bar. Talk here and drinks will follow.", e.ChannelID),
		})

	case "unset":
		if _, bound := v.Storage.GetBarChannel(e.GuildID); !bound {
			return discord.RespondEphemeral(v.Session, e, "There is no bar channel to unset.")
		}
		if err := v.Storage.ClearBarChannel(e.GuildID); err != nil {
			return fmt.Errorf("clear bar channel: %w", err)
		}
		return discord.RespondEmbed(v.Session, e, &discordgo.MessageEmbed{
			Title:       "🚪 The bar is closed",
			Description: "No channel is bound anymore. Collections stay untouched.",
		})

	case "status":
		channelID, bound := v.Storage.GetBarChannel(e.GuildID)
		if !bound {
			return discord.RespondEphemeral(v.Session, e, "No bar channel is set. Use `/bar set` in the channel you want.")
		}
		return discord.RespondEphemeral(v.Session, e, fmt.Sprintf("The bar is <#%s>.", channelID))

	default:
		return discord.RespondEphemeral(v.Session, e, "Unknown subcommand.")
	}
}

func init() {
	command.Register(
		&ManageBarCommand{},
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
