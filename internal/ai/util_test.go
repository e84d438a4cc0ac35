package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanReply(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Coming right up.", "Coming right up."},
		{"surrounding whitespace", "  Coming right up.  ", "Coming right up."},
		{"think block stripped", "<think>should I?</think>Coming right up.", "Coming right up."},
		{"wrapping quotes stripped", `"Coming right up."`, "Coming right up."},
		{"curly quotes stripped", "“Coming right up.”", "Coming right up."},
		{"inner quotes kept", `He said "now" twice.`, `He said "now" twice.`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cleanReply(tc.in))
		})
	}
}

func TestCleanReplyTruncatesLongReplies(t *testing.T) {
	got := cleanReply(strings.Repeat("a", 5000))
	assert.LessOrEqual(t, len(got), 2800+len("\n\n[truncated]"))
	assert.True(t, strings.HasSuffix(got, "[truncated]"))
}

func TestIsGarbageResponse(t *testing.T) {
	assert.True(t, isGarbageResponse("<html><body>error</body></html>"))
	assert.True(t, isGarbageResponse("Request not allowed"))
	assert.True(t, isGarbageResponse("  ok "))
	assert.False(t, isGarbageResponse("Coming right up."))
}

func TestDefaultProviderSelection(t *testing.T) {
	p, err := DefaultProvider("")
	require.NoError(t, err)
	assert.IsType(t, &PollinationsProvider{}, p)

	p, err = DefaultProvider("pollinations")
	require.NoError(t, err)
	assert.IsType(t, &PollinationsProvider{}, p)

	p, err = DefaultProvider("g4f:gpt-4o-mini")
	require.NoError(t, err)
	assert.IsType(t, &G4FProvider{}, p)
}

func TestDefaultProviderRejectsUnknownEngine(t *testing.T) {
	// A bad engine string must come back as an error for startup to refuse,
	// never take down a running handler.
	assert.NotPanics(t, func() {
		p, err := DefaultProvider("clippy")
		assert.Error(t, err)
		assert.Nil(t, p)
	})
}
