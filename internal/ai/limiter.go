package ai

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ChatLimiter gates completion calls: a global token bucket plus a per-guild
// cooldown so one busy guild cannot drain the budget for everyone.
type ChatLimiter struct {
	mu          sync.Mutex
	global      *rate.Limiter
	cooldown    time.Duration
	lastByGuild map[string]time.Time
}

// NewChatLimiter allows perMinute calls globally and at most one call per
// guild within cooldown.
func NewChatLimiter(perMinute int, cooldown time.Duration) *ChatLimiter {
	if perMinute <= 0 {
		perMinute = 6
	}
	return &ChatLimiter{
		global:      rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		cooldown:    cooldown,
		lastByGuild: make(map[string]time.Time),
	}
}

// Allow reports whether a completion call may go out for this guild now.
func (l *ChatLimiter) Allow(guildID string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if last, ok := l.lastByGuild[guildID]; ok && now.Sub(last) < l.cooldown {
		return false
	}
	if !l.global.AllowN(now, 1) {
		return false
	}
	l.lastByGuild[guildID] = now
	return true
}
