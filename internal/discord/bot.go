package discord

import (
	"context"
	"fmt"
	"log"
	"time"

	"barkeep/internal/ai"
	"barkeep/internal/bar"
	"barkeep/internal/catalog"
	"barkeep/internal/command"
	"barkeep/internal/config"
	"barkeep/internal/mind"
	"barkeep/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Bot wires the Discord session to the command registry and the bar.
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	store    *storage.Storage
	cat      *catalog.Catalog
	engine   *bar.Engine
	windows  *mind.Windows
	limiter  *ai.ChatLimiter
	provider ai.Provider
}

func NewBot(cfg *config.Config, store *storage.Storage, cat *catalog.Catalog, engine *bar.Engine, windows *mind.Windows, limiter *ai.ChatLimiter, provider ai.Provider) *Bot {
	return &Bot{
		cfg:      cfg,
		store:    store,
		cat:      cat,
		engine:   engine,
		windows:  windows,
		limiter:  limiter,
		provider: provider,
	}
}

// Run opens the session and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	if b.cfg.InitSlashCommands {
		for _, g := range r.Guilds {
			if err := b.registerCommands(g.ID); err != nil {
				log.Println("[ERR] Error registering slash commands for guild", g.ID, ":", err)
			}
		}
	} else {
		log.Println("[INFO] Registering slash commands skipped")
	}

	log.Printf("[INFO] ✅ %s is tending bar.", s.State.User.Username)
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if b.cfg.InitSlashCommands {
		if err := b.registerCommands(g.ID); err != nil {
			log.Println("[ERR] Error registering slash commands for guild", g.ID, ":", err)
		}
	}
}

// onMessageCreate runs every message command for each incoming message.
// Commands filter for themselves: the pour path acts on every message in
// the bound bar channel, chat only when the bot is mentioned.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}

	mentioned := false
	for _, user := range m.Mentions {
		if user.ID == s.State.User.ID {
			mentioned = true
			break
		}
	}

	// Record the line in the conversation window before dispatch so the
	// chat handler sees the current message as the newest window entry.
	if m.GuildID != "" {
		if barChannel, ok := b.store.GetBarChannel(m.GuildID); ok && barChannel == m.ChannelID {
			b.windows.Channel(m.ChannelID).Push(mind.Line{
				UserID:    m.Author.ID,
				Username:  m.Author.Username,
				Content:   m.Content,
				ChannelID: m.ChannelID,
				At:        time.Now(),
			})
		}
	}

	for _, cmd := range command.Runnable() {
		ctx := &command.MessageContext{
			Session:   s,
			Event:     m,
			Storage:   b.store,
			Config:    b.cfg,
			Catalog:   b.cat,
			Engine:    b.engine,
			Windows:   b.windows,
			Limiter:   b.limiter,
			Provider:  b.provider,
			Mentioned: mentioned,
		}
		if err := cmd.Run(ctx); err != nil {
			log.Printf("[ERR] Error running command %s: %v", cmd.Name(), err)
		}
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	cmdName := i.ApplicationCommandData().Name
	cmd, ok := command.Get(cmdName)
	if !ok {
		log.Printf("[WARN] Unknown command: %s", cmdName)
		return
	}

	ctx := &command.SlashContext{
		Session: s,
		Event:   i,
		Storage: b.store,
		Config:  b.cfg,
		Catalog: b.cat,
	}
	if err := cmd.Run(ctx); err != nil {
		log.Println("[ERR] Error running command:", err)
		_ = RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Error running command: %v", err),
		})
	}
}
