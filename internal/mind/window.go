package mind

import (
	"sync"
	"time"
)

// DefaultWindowSize is how many lines of a channel the companion remembers.
const DefaultWindowSize = 10

// Line is one exchanged message in a channel.
type Line struct {
	UserID    string    `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Content   string    `json:"content"`
	ChannelID string    `json:"channel_id"`
	FromBot   bool      `json:"from_bot"`
	At        time.Time `json:"at"`
}

// Window is a bounded FIFO of the most recent lines in one channel. Oldest
// entries are evicted first.
type Window struct {
	mu    sync.Mutex
	cap   int
	lines []Line
}

// Push appends a line, evicting the oldest when the window is full.
func (w *Window) Push(l Line) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.lines = append(w.lines, l)
	if len(w.lines) > w.cap {
		w.lines = w.lines[len(w.lines)-w.cap:]
	}
}

// Lines returns a copy of the window contents, oldest first.
func (w *Window) Lines() []Line {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Line, len(w.lines))
	copy(out, w.lines)
	return out
}

// Len returns the current number of lines held.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.lines)
}

// Windows tracks one Window per channel.
type Windows struct {
	mu        sync.Mutex
	cap       int
	byChannel map[string]*Window
}

func NewWindows(capacity int) *Windows {
	if capacity <= 0 {
		capacity = DefaultWindowSize
	}
	return &Windows{cap: capacity, byChannel: make(map[string]*Window)}
}

// Channel returns the window for a channel, creating it on first use.
func (ws *Windows) Channel(channelID string) *Window {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	w, ok := ws.byChannel[channelID]
	if !ok {
		w = &Window{cap: ws.cap}
		ws.byChannel[channelID] = w
	}
	return w
}
