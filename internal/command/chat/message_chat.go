package chat

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"barkeep/internal/ai"
	"barkeep/internal/bar"
	"barkeep/internal/command"
	"barkeep/internal/discord"
	"barkeep/internal/metrics"
	"barkeep/internal/middleware"
	"barkeep/internal/mind"
	"barkeep/internal/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

const messageLimit = 2000

const fallbackPrompt = `You are Barkeep, the friendly bartender of this Discord server.
Stay in character: warm, a little dry, never long-winded. Keep replies short.`

// ChatCommand answers when the bot is mentioned in the bar channel, and
// occasionally slides a free drink across the counter afterwards. The
// provider arrives through the context; it is validated at startup.
type ChatCommand struct {
	once   sync.Once
	prompt string
}

func (c *ChatCommand) Name() string            { return "bar-chat" }
func (c *ChatCommand) Description() string     { return "Chats with patrons who mention the bot" }
func (c *ChatCommand) Group() string           { return "chat" }
func (c *ChatCommand) Category() string        { return "💬 Chat" }
func (c *ChatCommand) UserPermissions() []int64 { return nil }

func (c *ChatCommand) setup(v *command.MessageContext) {
	c.once.Do(func() {
		c.prompt = fallbackPrompt
		if data, err := os.ReadFile(v.Config.AIPromptPath); err == nil {
			c.prompt = string(data)
		} else {
			log.Printf("[WARN] Could not read prompt file %s, using built-in persona: %v", v.Config.AIPromptPath, err)
		}
	})
}

func (c *ChatCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.MessageContext)
	if !ok {
		return nil
	}

	m := v.Event
	if !v.Mentioned || m.GuildID == "" {
		return nil
	}
	barChannel, bound := v.Storage.GetBarChannel(m.GuildID)
	if !bound || barChannel != m.ChannelID {
		return nil
	}

	c.setup(v)

	if !v.Limiter.Allow(m.GuildID, time.Now()) {
		return discord.Message(v.Session, m.ChannelID,
			fmt.Sprintf("%s easy there, one round at a time. 🍺", m.Author.Mention()))
	}

	stopTyping := keepTyping(v.Session, m.ChannelID)
	defer stopTyping()

	window := v.Windows.Channel(m.ChannelID)
	messages := mind.BuildMessages(c.prompt, window.Lines())

	started := time.Now()
	reply, err := v.Provider.Generate(messages)
	metrics.AIDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.AIFailures.Inc()
		log.Printf("[WARN] Completion failed in %s: %v", m.ChannelID, err)
		reply = ai.Apology
	}

	window.Push(mind.Line{
		Content:   reply,
		ChannelID: m.ChannelID,
		FromBot:   true,
		At:        time.Now(),
	})

	stopTyping()
	for _, chunk := range splitMessage(reply, messageLimit) {
		if err := discord.Message(v.Session, m.ChannelID, chunk); err != nil {
			return fmt.Errorf("send reply: %w", err)
		}
	}

	// A failed completion never gifts; the heuristic reads the real reply.
	if err != nil {
		return nil
	}
	return c.maybeGift(v, stripMention(m.Content, v.Session.State.User.ID), reply)
}

// maybeGift rolls the gift-desire score and, on success, pours an
// unsolicited drink. Gifts never advance the activity counter.
func (c *ChatCommand) maybeGift(v *command.MessageContext, userMessage, reply string) error {
	m := v.Event

	unlock := v.Engine.LockPatron(m.Author.ID)
	defer unlock()

	patron, exists, err := v.Storage.FetchPatron(m.Author.ID)
	if err != nil {
		return fmt.Errorf("fetch patron %s: %w", m.Author.ID, err)
	}
	if !exists {
		// No progress record yet; the welcome pour owns first contact.
		return nil
	}

	desire := bar.GiftDesire(bar.DefaultGiftHeuristic(), bar.GiftSignals{
		UserMessage: userMessage,
		Reply:       reply,
		OwnedCount:  len(patron.Drinks),
	})
	if !v.Engine.Roll(desire) {
		return nil
	}

	out := v.Engine.Gift(&patron, m.Author.Mention())
	if err := v.Storage.SetPatron(m.Author.ID, out.Patron); err != nil {
		return fmt.Errorf("save patron %s: %w", m.Author.ID, err)
	}

	metrics.Pours.WithLabelValues(out.Kind.String()).Inc()
	if out.Duplicate {
		metrics.DuplicatePours.Inc()
	}
	if out.Granted != nil {
		if err := v.Storage.AppendPourLog(m.GuildID, storage.PourRecord{
			ID:      uuid.NewString(),
			UserID:  m.Author.ID,
			DrinkID: out.Granted.ID,
			Kind:    out.Kind.String(),
			At:      time.Now(),
		}); err != nil {
			log.Printf("[WARN] Failed to record gift for %s: %v", m.Author.ID, err)
		}
	}

	if out.Notice != "" {
		return discord.Message(v.Session, m.ChannelID, out.Notice)
	}
	return nil
}

// keepTyping shows the typing indicator until the returned stop func runs.
// Discord drops the indicator after ~10s, so it is refreshed on a ticker.
func keepTyping(s *discordgo.Session, channelID string) func() {
	done := make(chan struct{})
	var once sync.Once

	go func() {
		_ = s.ChannelTyping(channelID)
		ticker := time.NewTicker(8 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = s.ChannelTyping(channelID)
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }
}

func stripMention(content, botID string) string {
	content = strings.ReplaceAll(content, "<@"+botID+">", "")
	content = strings.ReplaceAll(content, "<@!"+botID+">", "")
	return strings.TrimSpace(content)
}

// splitMessage breaks a reply into Discord-sized chunks, preferring line
// breaks, then spaces, then a hard cut.
func splitMessage(s string, limit int) []string {
	if len(s) <= limit {
		return []string{s}
	}

	var chunks []string
	for len(s) > limit {
		cut := strings.LastIndex(s[:limit], "\n")
		if cut <= 0 {
			cut = strings.LastIndex(s[:limit], " ")
		}
		if cut <= 0 {
			cut = limit
		}
		chunks = append(chunks, strings.TrimSpace(s[:cut]))
		s = strings.TrimSpace(s[cut:])
	}
	if s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}

func init() {
	command.Register(
		&ChatCommand{},
		middleware.WithGuildOnly(),
	)
}
