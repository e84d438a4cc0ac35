package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Rarity controls sampling weight in the reward engine.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Item is one drink on the menu. Immutable after load.
type Item struct {
	ID          string
	Name        string
	Rarity      Rarity // empty means the catalog carries no tier for it
	Description string
	Recipe      string
	Image       string
	Emoji       string
}

// Label returns the display name with the emoji appended when one is set.
func (i Item) Label() string {
	if i.Emoji != "" {
		return i.Name + " " + i.Emoji
	}
	return i.Name
}

// Catalog is the read-only drink table. Constructed once at startup and
// passed into consumers; iteration order is file order.
type Catalog struct {
	items []Item
	byID  map[string]int
}

// New validates and wraps a list of items. IDs must be unique and the list
// must not be empty — an empty menu is a configuration error, not something
// to limp along with.
func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	byID := make(map[string]int, len(items))
	for i, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("catalog item %d has no id", i)
		}
		if it.Name == "" {
			return nil, fmt.Errorf("catalog item %q has no name", it.ID)
		}
		if _, dup := byID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", it.ID)
		}
		byID[it.ID] = i
	}

	return &Catalog{items: items, byID: byID}, nil
}

// fileItem is the on-disk shape: an ordered JSON object keyed by drink id.
type fileItem struct {
	Name        string `json:"name"`
	Rarity      string `json:"rarity,omitempty"`
	Description string `json:"description,omitempty"`
	Recipe      string `json:"recipe,omitempty"`
	Image       string `json:"image,omitempty"`
	Emoji       string `json:"emoji,omitempty"`
}

// Load reads the catalog file. The token decoder is used instead of a plain
// map so the file's key order survives — lookup tie-breaking depends on it.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("catalog %s: expected a JSON object", path)
	}

	var items []Item
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read catalog key: %w", err)
		}
		id := keyTok.(string)

		var raw fileItem
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode catalog entry %q: %w", id, err)
		}

		rarity, err := parseRarity(raw.Rarity)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", id, err)
		}

		items = append(items, Item{
			ID:          id,
			Name:        raw.Name,
			Rarity:      rarity,
			Description: raw.Description,
			Recipe:      raw.Recipe,
			Image:       raw.Image,
			Emoji:       raw.Emoji,
		})
	}

	return New(items)
}

func parseRarity(s string) (Rarity, error) {
	switch Rarity(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case RarityCommon:
		return RarityCommon, nil
	case RarityRare:
		return RarityRare, nil
	case RarityLegendary:
		return RarityLegendary, nil
	default:
		return "", fmt.Errorf("unknown rarity %q", s)
	}
}

// Get returns the item with the given id.
func (c *Catalog) Get(id string) (Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Items returns the menu in file order. Callers must not mutate it.
func (c *Catalog) Items() []Item {
	return c.items
}

// Len returns the number of drinks on the menu.
func (c *Catalog) Len() int {
	return len(c.items)
}

// HasRarities reports whether every item carries a rarity tier. Mixed or
// absent tiers make weighted sampling meaningless, so the engine falls back
// to a uniform draw unless this holds.
func (c *Catalog) HasRarities() bool {
	for _, it := range c.items {
		if it.Rarity == "" {
			return false
		}
	}
	return true
}
