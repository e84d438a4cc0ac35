package bar

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"barkeep/internal/catalog"
	"barkeep/internal/storage"
)

// DuplicatePolicy decides what happens when a weighted draw lands on a drink
// the patron already owns. The owned set never grows from a duplicate either
// way; the policies differ only in whether the patron hears about it.
type DuplicatePolicy string

const (
	// DuplicateNotify sends the pour message even for an already-owned drink.
	DuplicateNotify DuplicatePolicy = "notify"
	// DuplicateSkip stays silent on duplicates.
	DuplicateSkip DuplicatePolicy = "skip"
)

// GrantKind tags what a successful evaluation handed out.
type GrantKind int

const (
	GrantNone GrantKind = iota
	GrantWelcome
	GrantPour
	GrantGift
	GrantRegular
)

// String returns the pour-log label for the kind.
func (k GrantKind) String() string {
	switch k {
	case GrantWelcome:
		return "welcome"
	case GrantPour:
		return "pour"
	case GrantGift:
		return "gift"
	case GrantRegular:
		return "regular"
	default:
		return "none"
	}
}

// DefaultWeights is the observed rarity weighting: common 80, rare 19,
// legendary 1.
var DefaultWeights = map[catalog.Rarity]int{
	catalog.RarityCommon:    80,
	catalog.RarityRare:      19,
	catalog.RarityLegendary: 1,
}

// Config carries the reward policy. The engine has no hardcoded variants:
// threshold, chance, duplicate handling and the weight table all live here.
type Config struct {
	Threshold  int
	PourChance float64
	Duplicates DuplicatePolicy
	Weights    map[catalog.Rarity]int
	Rand       *rand.Rand // seeded source for tests; nil gets a time seed
}

// DefaultConfig returns the reference policy: threshold 5, coin-flip pour,
// duplicates notified.
func DefaultConfig() Config {
	return Config{
		Threshold:  5,
		PourChance: 0.5,
		Duplicates: DuplicateNotify,
		Weights:    DefaultWeights,
	}
}

// Engine decides, per incoming message, whether a patron gets a drink.
type Engine struct {
	cfg   Config
	cat   *catalog.Catalog
	mu    sync.Mutex // guards rng
	rng   *rand.Rand
	locks patronLocks
}

// New builds an engine over an immutable catalog. An empty catalog is a
// configuration error.
func New(cfg Config, cat *catalog.Catalog) (*Engine, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, fmt.Errorf("bar: drink catalog is empty")
	}
	if cfg.Threshold <= 0 {
		return nil, fmt.Errorf("bar: pour threshold must be positive, got %d", cfg.Threshold)
	}
	if cfg.PourChance < 0 || cfg.PourChance > 1 {
		return nil, fmt.Errorf("bar: pour chance must be in [0,1], got %v", cfg.PourChance)
	}
	switch cfg.Duplicates {
	case "":
		cfg.Duplicates = DuplicateNotify
	case DuplicateNotify, DuplicateSkip:
	default:
		return nil, fmt.Errorf("bar: unknown duplicate policy %q", cfg.Duplicates)
	}
	if cfg.Weights == nil {
		cfg.Weights = DefaultWeights
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Engine{
		cfg:   cfg,
		cat:   cat,
		rng:   rng,
		locks: patronLocks{held: make(map[string]*sync.Mutex)},
	}, nil
}

// Outcome is the result of evaluating one message (or one gift roll).
// Patron is the full replacement record to persist. Granted and Notice are
// set only when something should reach the patron.
type Outcome struct {
	Patron    storage.Patron
	Granted   *catalog.Item
	Kind      GrantKind
	Duplicate bool
	Notice    string
}

// Evaluate applies the reward rules to one message. p is nil for a user with
// no progress record; bound reports whether the message arrived in the
// guild's bar channel; mention is the author's mention string used in
// notices.
//
// Rules, in order: unbound channels are a no-op; a new patron gets exactly
// one uniformly drawn starter drink and a welcome; otherwise the activity
// counter advances and, at the threshold, a Bernoulli(PourChance) trial
// gates a rarity-weighted draw. The counter resets at the threshold whether
// or not the trial succeeds.
func (e *Engine) Evaluate(p *storage.Patron, bound bool, mention string) Outcome {
	if !bound {
		if p != nil {
			return Outcome{Patron: *p}
		}
		return Outcome{}
	}

	now := time.Now()

	if p == nil {
		item := e.pickUniform()
		patron := storage.Patron{
			Drinks:       []string{item.ID},
			MessageCount: 0,
			FirstSeen:    now,
			LastPourAt:   now,
		}
		return Outcome{
			Patron:  patron,
			Granted: &item,
			Kind:    GrantWelcome,
			Notice: fmt.Sprintf(
				"Welcome to the bar, %s. Take a seat and relax. Here's your first drink on the house: %s 🍸",
				mention, item.Label()),
		}
	}

	out := Outcome{Patron: *p}
	out.Patron.MessageCount++
	if out.Patron.MessageCount < e.cfg.Threshold {
		return out
	}

	// Threshold reached: the counter resets no matter how the trial lands.
	out.Patron.MessageCount = 0
	if !e.Roll(e.cfg.PourChance) {
		return out
	}

	item := e.pickWeighted()
	added := out.Patron.AddDrink(item.ID)
	out.Duplicate = !added

	if !added && e.cfg.Duplicates == DuplicateSkip {
		return out
	}

	out.Patron.LastPourAt = now
	out.Granted = &item
	out.Kind = GrantPour
	out.Notice = fmt.Sprintf(
		"%s, here is your new drink: %s. 🥂 Keep the conversation going.",
		mention, item.Label())
	return out
}

// Gift pours an unsolicited drink: a uniform draw over drinks the patron is
// missing, or — for a patron who has tried the whole menu — any drink with a
// regular-customer notice.
func (e *Engine) Gift(p *storage.Patron, mention string) Outcome {
	var missing []catalog.Item
	for _, it := range e.cat.Items() {
		if !p.Owns(it.ID) {
			missing = append(missing, it)
		}
	}

	out := Outcome{Patron: *p}
	now := time.Now()

	if len(missing) == 0 {
		item := e.pickUniform()
		out.Granted = &item
		out.Kind = GrantRegular
		out.Duplicate = true
		out.Patron.LastPourAt = now
		out.Notice = fmt.Sprintf(
			"%s, you've worked through the whole menu. Another %s for my favorite regular. 🍻",
			mention, item.Label())
		return out
	}

	item := missing[e.intn(len(missing))]
	out.Patron.AddDrink(item.ID)
	out.Patron.LastPourAt = now
	out.Granted = &item
	out.Kind = GrantGift
	out.Notice = fmt.Sprintf("%s, this one's on the house: %s. 🎁", mention, item.Label())
	return out
}

// Roll runs one Bernoulli trial with success probability p.
func (e *Engine) Roll(p float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64() < p
}

func (e *Engine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}

func (e *Engine) pickUniform() catalog.Item {
	items := e.cat.Items()
	return items[e.intn(len(items))]
}

// pickWeighted draws by rarity weight, falling back to a uniform draw when
// the catalog carries no (or incomplete) rarity metadata.
func (e *Engine) pickWeighted() catalog.Item {
	if !e.cat.HasRarities() {
		return e.pickUniform()
	}

	items := e.cat.Items()
	total := 0
	for _, it := range items {
		total += e.cfg.Weights[it.Rarity]
	}
	if total <= 0 {
		return e.pickUniform()
	}

	n := e.intn(total)
	for _, it := range items {
		n -= e.cfg.Weights[it.Rarity]
		if n < 0 {
			return it
		}
	}
	return items[len(items)-1]
}
