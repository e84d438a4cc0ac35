package bar

import (
	"fmt"
	"log"
	"time"

	"barkeep/internal/command"
	"barkeep/internal/discord"
	"barkeep/internal/metrics"
	"barkeep/internal/middleware"
	"barkeep/internal/storage"

	"github.com/google/uuid"
)

// PourCommand watches the bound bar channel and runs the reward engine for
// every message in it. It has no slash definition — patrons trigger it just
// by talking.
type PourCommand struct{}

func (c *PourCommand) Name() string            { return "bar-pour" }
func (c *PourCommand) Description() string     { return "Grants drinks for activity in the bar channel" }
func (c *PourCommand) Group() string           { return "bar" }
func (c *PourCommand) Category() string        { return "🍸 Bar" }
func (c *PourCommand) UserPermissions() []int64 { return nil }

func (c *PourCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.MessageContext)
	if !ok {
		return nil
	}

	m := v.Event
	if m.GuildID == "" {
		return nil
	}
	barChannel, bound := v.Storage.GetBarChannel(m.GuildID)
	if !bound || barChannel != m.ChannelID {
		return nil
	}

	metrics.MessagesSeen.Inc()

	// Load, evaluate and save run under the patron's lock so concurrent
	// messages from the same user cannot lose counter increments.
	unlock := v.Engine.LockPatron(m.Author.ID)
	defer unlock()

	patron, exists, err := v.Storage.FetchPatron(m.Author.ID)
	if err != nil {
		return fmt.Errorf("fetch patron %s: %w", m.Author.ID, err)
	}

	var p *storage.Patron
	if exists {
		p = &patron
	}

	out := v.Engine.Evaluate(p, true, m.Author.Mention())
	if err := v.Storage.SetPatron(m.Author.ID, out.Patron); err != nil {
		// Progress did not persist, so the patron must not be told they
		// got a drink they will not find in their inventory.
		return fmt.Errorf("save patron %s: %w", m.Author.ID, err)
	}

	if out.Duplicate {
		metrics.DuplicatePours.Inc()
	}
	if out.Granted == nil {
		return nil
	}

	metrics.Pours.WithLabelValues(out.Kind.String()).Inc()
	if err := v.Storage.AppendPourLog(m.GuildID, storage.PourRecord{
		ID:      uuid.NewString(),
		UserID:  m.Author.ID,
		DrinkID: out.Granted.ID,
		Kind:    out.Kind.String(),
		At:      time.Now(),
	}); err != nil {
		log.Printf("[WARN] Failed to record pour for %s: %v", m.Author.ID, err)
	}

	if out.Notice != "" {
		return discord.Message(v.Session, m.ChannelID, out.Notice)
	}
	return nil
}

func init() {
	command.Register(
		&PourCommand{},
		middleware.WithGuildOnly(),
	)
}
