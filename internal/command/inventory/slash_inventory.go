package inventory

import (
	"fmt"
	"strings"

	"barkeep/internal/command"
	"barkeep/internal/discord"
	"barkeep/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

// InventoryCommand shows a patron their own collection. Ephemeral — the
// channel does not need to see everyone's shelf.
type InventoryCommand struct{}

func (c *InventoryCommand) Name() string            { return "inventory" }
func (c *InventoryCommand) Description() string     { return "Show the drinks you have collected" }
func (c *InventoryCommand) Group() string           { return "bar" }
func (c *InventoryCommand) Category() string        { return "🍸 Bar" }
func (c *InventoryCommand) UserPermissions() []int64 { return nil }

func (c *InventoryCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *InventoryCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashContext)
	if !ok {
		return nil
	}

	e := v.Event
	user := e.Member.User

	patron, exists, err := v.Storage.FetchPatron(user.ID)
	if err != nil {
		return fmt.Errorf("fetch patron %s: %w", user.ID, err)
	}
	if !exists || len(patron.Drinks) == 0 {
		return discord.RespondEphemeral(v.Session, e,
			"Your shelf is empty. Hang around the bar and that will change.")
	}

	var lines []string
	for _, id := range patron.Drinks {
		item, ok := v.Catalog.Get(id)
		if !ok {
			// Drink left the menu since it was poured; keep the raw id so
			// the collection count still adds up.
			lines = append(lines, fmt.Sprintf("• %s *(retired)*", id))
			continue
		}
		if item.Rarity != "" {
			lines = append(lines, fmt.Sprintf("• %s — *%s*", item.Label(), item.Rarity))
			continue
		}
		lines = append(lines, "• "+item.Label())
	}

	return discord.RespondEmbedEphemeral(v.Session, e, &discordgo.MessageEmbed{
		Title:       "🗄️ Your shelf",
		Description: strings.Join(lines, "\n"),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("You own %d of %d drinks", len(patron.Drinks), v.Catalog.Len()),
		},
	})
}

func init() {
	command.Register(
		&InventoryCommand{},
		middleware.WithGuildOnly(),
		middleware.WithCommandLogger(),
	)
}
