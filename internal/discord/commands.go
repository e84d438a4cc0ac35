package discord

import (
	"fmt"
	"log"

	"barkeep/internal/command"

	"github.com/bwmarrin/discordgo"
)

// registerCommands overwrites the guild's slash commands with the current
// registry contents.
func (b *Bot) registerCommands(guildID string) error {
	var defs []*discordgo.ApplicationCommand
	for _, cmd := range command.All() {
		sp, ok := cmd.(command.SlashProvider)
		if !ok {
			continue
		}
		if def := sp.SlashDefinition(); def != nil {
			defs = append(defs, def)
		}
	}

	if len(defs) == 0 {
		return nil
	}

	_, err := b.dg.ApplicationCommandBulkOverwrite(b.dg.State.User.ID, guildID, defs)
	if err != nil {
		return fmt.Errorf("bulk overwrite for guild %s: %w", guildID, err)
	}

	log.Printf("[INFO] Registered %d slash commands for guild %s", len(defs), guildID)
	return nil
}
