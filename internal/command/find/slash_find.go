package find

import (
	"fmt"

	"barkeep/internal/catalog"
	"barkeep/internal/command"
	"barkeep/internal/discord"
	"barkeep/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

// matchLimit is how many fuzzy candidates are considered before the owned
// filter is applied.
const matchLimit = 3

// FindCommand looks a drink up by approximate name and shows its card —
// but only for drinks the caller has actually earned.
type FindCommand struct{}

func (c *FindCommand) Name() string            { return "find" }
func (c *FindCommand) Description() string     { return "Look up one of your drinks by name" }
func (c *FindCommand) Group() string           { return "bar" }
func (c *FindCommand) Category() string        { return "🍸 Bar" }
func (c *FindCommand) UserPermissions() []int64 { return nil }

func (c *FindCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "Drink name, typos welcome",
				Required:    true,
			},
		},
	}
}

func (c *FindCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashContext)
	if !ok {
		return nil
	}

	e := v.Event
	query := e.ApplicationCommandData().Options[0].StringValue()
	user := e.Member.User

	matches := v.Catalog.Search(query, matchLimit, 0)
	if len(matches) == 0 {
		return discord.RespondEphemeral(v.Session, e,
			fmt.Sprintf("Nothing on the menu sounds like %q.", query))
	}

	patron, exists, err := v.Storage.FetchPatron(user.ID)
	if err != nil {
		return fmt.Errorf("fetch patron %s: %w", user.ID, err)
	}

	var owned []catalog.Item
	for _, m := range matches {
		if !exists || !patron.Owns(m.ID) {
			continue
		}
		if item, ok := v.Catalog.Get(m.ID); ok {
			owned = append(owned, item)
		}
	}

	if len(owned) == 0 {
		return discord.RespondEphemeral(v.Session, e,
			fmt.Sprintf("Closest on the menu is **%s**, but you haven't earned it yet. Keep the conversation going.", matches[0].Name))
	}

	item := owned[0]
	embed := &discordgo.MessageEmbed{
		Title:       item.Label(),
		Description: item.Description,
	}
	if item.Rarity != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Rarity", Value: string(item.Rarity), Inline: true,
		})
	}
	if item.Recipe != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Recipe", Value: item.Recipe,
		})
	}
	if item.Image != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: item.Image}
	}
	if len(owned) > 1 {
		also := ""
		for i, it := range owned[1:] {
			if i > 0 {
				also += ", "
			}
			also += it.Name
		}
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Also matched: " + also}
	}

	return discord.RespondEmbedEphemeral(v.Session, e, embed)
}

func init() {
	command.Register(
		&FindCommand{},
		middleware.WithGuildOnly(),
		middleware.WithCommandLogger(),
	)
}
