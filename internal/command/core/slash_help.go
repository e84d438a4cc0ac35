package core

import (
	"fmt"
	"sort"
	"strings"

	"barkeep/internal/command"
	"barkeep/internal/discord"
	"barkeep/internal/middleware"
	"barkeep/internal/version"

	"github.com/bwmarrin/discordgo"
)

// HelpCommand lists every slash command, grouped by category.
type HelpCommand struct{}

func (c *HelpCommand) Name() string            { return "help" }
func (c *HelpCommand) Description() string     { return "Show what the barkeep can do" }
func (c *HelpCommand) Group() string           { return "core" }
func (c *HelpCommand) Category() string        { return "ℹ️ Information" }
func (c *HelpCommand) UserPermissions() []int64 { return nil }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *HelpCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashContext)
	if !ok {
		return nil
	}

	byCategory := map[string][]string{}
	for _, cmd := range command.All() {
		if _, slash := cmd.(command.SlashProvider); !slash {
			continue
		}
		line := fmt.Sprintf("`/%s` — %s", cmd.Name(), cmd.Description())
		byCategory[cmd.Category()] = append(byCategory[cmd.Category()], line)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s v%s", version.AppName, version.Version),
		Description: "Mention me to chat. Talk in the bar channel and drinks will find you.",
	}
	for _, cat := range categories {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  cat,
			Value: strings.Join(byCategory[cat], "\n"),
		})
	}

	return discord.RespondEmbedEphemeral(v.Session, v.Event, embed)
}

func init() {
	command.Register(
		&HelpCommand{},
		middleware.WithCommandLogger(),
	)
}
