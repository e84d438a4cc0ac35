package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPatronRoundtrip(t *testing.T) {
	s := testStorage(t)

	_, exists, err := s.FetchPatron("u1")
	require.NoError(t, err)
	assert.False(t, exists, "unseen user has no record")

	now := time.Now().UTC().Truncate(time.Second)
	in := Patron{
		Drinks:       []string{"lager", "mojito"},
		MessageCount: 3,
		FirstSeen:    now,
		LastPourAt:   now,
	}
	require.NoError(t, s.SetPatron("u1", in))

	got, exists, err := s.FetchPatron("u1")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, in.Drinks, got.Drinks)
	assert.Equal(t, 3, got.MessageCount)
	assert.True(t, in.FirstSeen.Equal(got.FirstSeen))
}

func TestPatronSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datastore.json")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.SetPatron("u1", Patron{Drinks: []string{"gin"}, MessageCount: 2, FirstSeen: time.Now()}))
	require.NoError(t, s.Close())

	// A fresh store reads the flushed file; values come back as generic maps
	// and must decode the same way.
	s2, err := New(path)
	require.NoError(t, err)
	defer s2.Close()

	got, exists, err := s2.FetchPatron("u1")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, []string{"gin"}, got.Drinks)
	assert.Equal(t, 2, got.MessageCount)
}

func TestPatronOwnsAndAddDrink(t *testing.T) {
	p := Patron{}

	assert.False(t, p.Owns("lager"))
	assert.True(t, p.AddDrink("lager"))
	assert.True(t, p.Owns("lager"))
	assert.False(t, p.AddDrink("lager"), "second add is a no-op")
	assert.Len(t, p.Drinks, 1)
}

func TestBarChannelBinding(t *testing.T) {
	s := testStorage(t)

	_, bound := s.GetBarChannel("g1")
	assert.False(t, bound)

	require.NoError(t, s.SetBarChannel("g1", "c1"))
	ch, bound := s.GetBarChannel("g1")
	assert.True(t, bound)
	assert.Equal(t, "c1", ch)

	// Rebinding overwrites; one bar per guild.
	require.NoError(t, s.SetBarChannel("g1", "c2"))
	ch, _ = s.GetBarChannel("g1")
	assert.Equal(t, "c2", ch)

	require.NoError(t, s.ClearBarChannel("g1"))
	_, bound = s.GetBarChannel("g1")
	assert.False(t, bound, "cleared guild behaves like one never bound")
}

func TestClearBarChannelOnUnboundGuild(t *testing.T) {
	s := testStorage(t)
	assert.NoError(t, s.ClearBarChannel("never-seen"))
}

func TestPourLogCap(t *testing.T) {
	s := testStorage(t)

	for i := 0; i < pourLogLimit+10; i++ {
		require.NoError(t, s.AppendPourLog("g1", PourRecord{
			ID:      fmt.Sprintf("id-%d", i),
			UserID:  "u1",
			DrinkID: "lager",
			Kind:    "pour",
			At:      time.Now(),
		}))
	}

	log, err := s.FetchPourLog("g1")
	require.NoError(t, err)
	require.Len(t, log, pourLogLimit)
	assert.Equal(t, "id-10", log[0].ID, "oldest entries fall off first")
	assert.Equal(t, fmt.Sprintf("id-%d", pourLogLimit+9), log[len(log)-1].ID)
}

func TestCommandHistoryCap(t *testing.T) {
	s := testStorage(t)

	for i := 0; i < commandHistoryLimit+5; i++ {
		require.NoError(t, s.AppendCommandHistory("g1", CommandRecord{
			UserID:   "u1",
			Username: "patron",
			Command:  fmt.Sprintf("cmd-%d", i),
			Datetime: time.Now(),
		}))
	}

	hist, err := s.FetchCommandHistory("g1")
	require.NoError(t, err)
	require.Len(t, hist, commandHistoryLimit)
	assert.Equal(t, "cmd-5", hist[0].Command)
}

func TestGuildRecordsAreIndependent(t *testing.T) {
	s := testStorage(t)

	require.NoError(t, s.SetBarChannel("g1", "c1"))
	require.NoError(t, s.SetBarChannel("g2", "c9"))

	require.NoError(t, s.ClearBarChannel("g1"))

	_, bound := s.GetBarChannel("g1")
	assert.False(t, bound)
	ch, bound := s.GetBarChannel("g2")
	assert.True(t, bound)
	assert.Equal(t, "c9", ch)
}
