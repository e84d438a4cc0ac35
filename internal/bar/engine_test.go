package bar

import (
	"math/rand"
	"testing"

	"barkeep/internal/catalog"
	"barkeep/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Item{
		{ID: "lager", Name: "House Lager", Rarity: catalog.RarityCommon},
		{ID: "gin", Name: "Gin & Tonic", Rarity: catalog.RarityCommon},
		{ID: "mojito", Name: "Mojito", Rarity: catalog.RarityCommon},
		{ID: "negroni", Name: "Saffron Negroni", Rarity: catalog.RarityRare},
		{ID: "reserve", Name: "Barkeep's Reserve", Rarity: catalog.RarityLegendary},
	})
	require.NoError(t, err)
	return cat
}

func testEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	if cfg.Threshold == 0 {
		cfg.Threshold = 5
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	e, err := New(cfg, testCatalog(t))
	require.NoError(t, err)
	return e
}

func TestNewRejectsBadConfig(t *testing.T) {
	cat := testCatalog(t)

	_, err := New(Config{Threshold: 5, PourChance: 0.5}, nil)
	assert.Error(t, err, "nil catalog")

	empty := &catalog.Catalog{}
	_, err = New(Config{Threshold: 5, PourChance: 0.5}, empty)
	assert.Error(t, err, "empty catalog")

	_, err = New(Config{Threshold: 0, PourChance: 0.5}, cat)
	assert.Error(t, err, "zero threshold")

	_, err = New(Config{Threshold: 5, PourChance: 1.5}, cat)
	assert.Error(t, err, "chance above 1")

	_, err = New(Config{Threshold: 5, PourChance: 0.5, Duplicates: "maybe"}, cat)
	assert.Error(t, err, "unknown duplicate policy")
}

func TestEvaluateUnboundIsNoOp(t *testing.T) {
	e := testEngine(t, Config{PourChance: 1})

	out := e.Evaluate(nil, false, "@new")
	assert.Nil(t, out.Granted)
	assert.Empty(t, out.Notice)
	assert.Empty(t, out.Patron.Drinks, "no record created outside the bar")

	p := storage.Patron{Drinks: []string{"lager"}, MessageCount: 3}
	out = e.Evaluate(&p, false, "@old")
	assert.Equal(t, p, out.Patron, "existing record untouched outside the bar")
	assert.Nil(t, out.Granted)
}

func TestEvaluateWelcomesNewPatron(t *testing.T) {
	// PourChance 0: whatever happens must come from the welcome path.
	e := testEngine(t, Config{PourChance: 0})

	out := e.Evaluate(nil, true, "@new")
	require.NotNil(t, out.Granted)
	assert.Equal(t, GrantWelcome, out.Kind)
	assert.Len(t, out.Patron.Drinks, 1)
	assert.Equal(t, out.Granted.ID, out.Patron.Drinks[0])
	assert.Equal(t, 0, out.Patron.MessageCount, "welcome message does not count toward the threshold")
	assert.Contains(t, out.Notice, "@new")
	assert.Contains(t, out.Notice, out.Granted.Name)
	assert.False(t, out.Patron.FirstSeen.IsZero())
}

func TestEvaluateCountsTowardThreshold(t *testing.T) {
	e := testEngine(t, Config{PourChance: 0})

	p := storage.Patron{Drinks: []string{"lager"}}
	for i := 1; i < 5; i++ {
		out := e.Evaluate(&p, true, "@u")
		p = out.Patron
		assert.Equal(t, i, p.MessageCount)
		assert.Nil(t, out.Granted)
	}

	// Fifth message hits the threshold; the failed trial still resets.
	out := e.Evaluate(&p, true, "@u")
	assert.Equal(t, 0, out.Patron.MessageCount)
	assert.Nil(t, out.Granted, "chance 0 never pours")
}

func TestEvaluatePoursAtThreshold(t *testing.T) {
	e := testEngine(t, Config{PourChance: 1})

	p := storage.Patron{Drinks: []string{"lager"}, MessageCount: 4}
	out := e.Evaluate(&p, true, "@u")
	assert.Equal(t, 0, out.Patron.MessageCount)

	if out.Duplicate {
		assert.Equal(t, p.Drinks, out.Patron.Drinks, "duplicate draw never grows the set")
	} else {
		require.NotNil(t, out.Granted)
		assert.Equal(t, GrantPour, out.Kind)
		assert.Len(t, out.Patron.Drinks, 2)
		assert.Contains(t, out.Notice, "@u")
	}
}

func TestEvaluateCollectionIsMonotonic(t *testing.T) {
	e := testEngine(t, Config{Threshold: 1, PourChance: 1})

	p := storage.Patron{Drinks: []string{"lager"}}
	owned := map[string]bool{"lager": true}
	for i := 0; i < 5000; i++ {
		out := e.Evaluate(&p, true, "@u")
		for id := range owned {
			assert.True(t, out.Patron.Owns(id), "drink %s disappeared", id)
		}
		for _, id := range out.Patron.Drinks {
			owned[id] = true
		}
		p = out.Patron
	}
	assert.Len(t, p.Drinks, 5, "eventually the whole menu is collected")
}

func TestEvaluateDuplicatePolicies(t *testing.T) {
	full := []string{"lager", "gin", "mojito", "negroni", "reserve"}

	t.Run("notify", func(t *testing.T) {
		e := testEngine(t, Config{Threshold: 1, PourChance: 1, Duplicates: DuplicateNotify})
		p := storage.Patron{Drinks: full}
		out := e.Evaluate(&p, true, "@u")
		assert.True(t, out.Duplicate)
		require.NotNil(t, out.Granted, "notify policy still announces the pour")
		assert.NotEmpty(t, out.Notice)
		assert.Len(t, out.Patron.Drinks, 5)
	})

	t.Run("skip", func(t *testing.T) {
		e := testEngine(t, Config{Threshold: 1, PourChance: 1, Duplicates: DuplicateSkip})
		p := storage.Patron{Drinks: full}
		out := e.Evaluate(&p, true, "@u")
		assert.True(t, out.Duplicate)
		assert.Nil(t, out.Granted, "skip policy stays silent")
		assert.Empty(t, out.Notice)
		assert.Len(t, out.Patron.Drinks, 5)
	})
}

func TestWeightedDrawDistribution(t *testing.T) {
	// One item per tier so the empirical shares map straight onto the
	// 80/19/1 weight table.
	cat, err := catalog.New([]catalog.Item{
		{ID: "a", Name: "A", Rarity: catalog.RarityCommon},
		{ID: "b", Name: "B", Rarity: catalog.RarityRare},
		{ID: "c", Name: "C", Rarity: catalog.RarityLegendary},
	})
	require.NoError(t, err)

	e, err := New(Config{Threshold: 1, PourChance: 1, Rand: rand.New(rand.NewSource(42))}, cat)
	require.NoError(t, err)

	const n = 100000
	counts := map[catalog.Rarity]int{}
	for i := 0; i < n; i++ {
		it := e.pickWeighted()
		counts[it.Rarity]++
	}

	assert.InDelta(t, 0.80, float64(counts[catalog.RarityCommon])/n, 0.02)
	assert.InDelta(t, 0.19, float64(counts[catalog.RarityRare])/n, 0.02)
	assert.InDelta(t, 0.01, float64(counts[catalog.RarityLegendary])/n, 0.005)
}

func TestWeightedDrawFallsBackWithoutRarities(t *testing.T) {
	cat, err := catalog.New([]catalog.Item{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B", Rarity: catalog.RarityRare},
	})
	require.NoError(t, err)

	e, err := New(Config{Threshold: 1, PourChance: 1, Rand: rand.New(rand.NewSource(7))}, cat)
	require.NoError(t, err)

	const n = 20000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		counts[e.pickWeighted().ID]++
	}
	assert.InDelta(t, 0.5, float64(counts["a"])/n, 0.02, "mixed tiers degrade to uniform")
}

func TestGift(t *testing.T) {
	e := testEngine(t, Config{PourChance: 0})

	t.Run("pours a missing drink", func(t *testing.T) {
		p := storage.Patron{Drinks: []string{"lager", "gin"}}
		out := e.Gift(&p, "@u")
		require.NotNil(t, out.Granted)
		assert.Equal(t, GrantGift, out.Kind)
		assert.False(t, out.Duplicate)
		assert.NotContains(t, []string{"lager", "gin"}, out.Granted.ID)
		assert.Len(t, out.Patron.Drinks, 3)
		assert.Equal(t, 0, out.Patron.MessageCount, "gifts never touch the counter")
	})

	t.Run("regular-customer pour on a full shelf", func(t *testing.T) {
		p := storage.Patron{Drinks: []string{"lager", "gin", "mojito", "negroni", "reserve"}}
		out := e.Gift(&p, "@u")
		require.NotNil(t, out.Granted)
		assert.Equal(t, GrantRegular, out.Kind)
		assert.True(t, out.Duplicate)
		assert.Len(t, out.Patron.Drinks, 5)
		assert.Contains(t, out.Notice, "regular")
	})
}

func TestRollRespectsBounds(t *testing.T) {
	e := testEngine(t, Config{PourChance: 0.5})

	for i := 0; i < 100; i++ {
		assert.False(t, e.Roll(0))
		assert.True(t, e.Roll(1))
	}
}

func TestLockPatronSerializes(t *testing.T) {
	e := testEngine(t, Config{PourChance: 0.5})

	counter := 0
	done := make(chan struct{})
	for i := 0; i < 50; i++ {
		go func() {
			unlock := e.LockPatron("user-1")
			counter++
			unlock()
			done <- struct{}{}
		}()
	}
	for i := 0; i < 50; i++ {
		<-done
	}
	assert.Equal(t, 50, counter)
}
