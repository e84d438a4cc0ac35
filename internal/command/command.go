package command

import (
	"barkeep/internal/ai"
	"barkeep/internal/bar"
	"barkeep/internal/catalog"
	"barkeep/internal/config"
	"barkeep/internal/mind"
	"barkeep/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Command is what every bot command implements. Run receives one of the
// context types below; a command that does not handle the given context
// type returns nil without acting.
type Command interface {
	Name() string
	Description() string
	Group() string
	Category() string
	UserPermissions() []int64
	Run(ctx interface{}) error
}

// SlashProvider is implemented by commands that register a slash definition.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// SlashContext is passed when a slash interaction fires.
type SlashContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
	Config  *config.Config
	Catalog *catalog.Catalog
}

// MessageContext is passed for every channel message. Unlike interactions,
// message commands decide themselves whether a given message concerns them
// (the pour path wants every bar-channel message, chat only mentions).
type MessageContext struct {
	Session   *discordgo.Session
	Event     *discordgo.MessageCreate
	Storage   *storage.Storage
	Config    *config.Config
	Catalog   *catalog.Catalog
	Engine    *bar.Engine
	Windows   *mind.Windows
	Limiter   *ai.ChatLimiter
	Provider  ai.Provider
	Mentioned bool
}
