package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drinks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPreservesFileOrder(t *testing.T) {
	path := writeCatalog(t, `{
		"zeta": {"name": "Zeta Fizz", "rarity": "common"},
		"alpha": {"name": "Alpha Sour", "rarity": "rare"},
		"mid": {"name": "Midnight Pour", "rarity": "legendary", "emoji": "🌙"}
	}`)

	cat, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, cat.Len())

	items := cat.Items()
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, []string{items[0].ID, items[1].ID, items[2].ID})

	item, ok := cat.Get("mid")
	require.True(t, ok)
	assert.Equal(t, "Midnight Pour", item.Name)
	assert.Equal(t, RarityLegendary, item.Rarity)
	assert.Equal(t, "Midnight Pour 🌙", item.Label())

	_, ok = cat.Get("missing")
	assert.False(t, ok)
}

func TestLoadRejectsBadCatalogs(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty object", `{}`},
		{"not an object", `[1, 2, 3]`},
		{"unknown rarity", `{"a": {"name": "A", "rarity": "mythic"}}`},
		{"missing name", `{"a": {"rarity": "common"}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeCatalog(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]Item{
		{ID: "lager", Name: "House Lager"},
		{ID: "lager", Name: "Other Lager"},
	})
	assert.Error(t, err)
}

func TestHasRarities(t *testing.T) {
	full, err := New([]Item{
		{ID: "a", Name: "A", Rarity: RarityCommon},
		{ID: "b", Name: "B", Rarity: RarityRare},
	})
	require.NoError(t, err)
	assert.True(t, full.HasRarities())

	mixed, err := New([]Item{
		{ID: "a", Name: "A", Rarity: RarityCommon},
		{ID: "b", Name: "B"},
	})
	require.NoError(t, err)
	assert.False(t, mixed.HasRarities())
}

func TestParseRarityNormalizes(t *testing.T) {
	r, err := parseRarity("  Legendary ")
	require.NoError(t, err)
	assert.Equal(t, RarityLegendary, r)
}
