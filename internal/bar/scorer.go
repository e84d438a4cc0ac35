package bar

import "strings"

// GiftHeuristic holds the weights of the gift-desire score. Unlike the pour
// path this is not a counter: it blends conversational signals into one
// bounded probability.
type GiftHeuristic struct {
	Base           float64
	SentimentBoost float64 // user message sounds positive
	WarmthBoost    float64 // companion reply came out warm
	RegularBoost   float64 // patron already collects
	RegularAfter   int     // owned count above which RegularBoost applies
	Max            float64
}

// DefaultGiftHeuristic returns the reference weights: 0.05 base, +0.15
// sentiment, +0.10 warmth, +0.10 for patrons holding more than two drinks,
// capped at 0.40.
func DefaultGiftHeuristic() GiftHeuristic {
	return GiftHeuristic{
		Base:           0.05,
		SentimentBoost: 0.15,
		WarmthBoost:    0.10,
		RegularBoost:   0.10,
		RegularAfter:   2,
		Max:            0.40,
	}
}

// GiftSignals bundles all inputs for the score — no hidden state.
type GiftSignals struct {
	UserMessage string
	Reply       string
	OwnedCount  int
}

var positiveWords = []string{
	"love", "thank", "great", "awesome", "amazing", "happy",
	"nice", "cool", "best", "cheers", "wonderful", "fun", "haha", "lol",
}

var warmMarkers = []string{
	"❤️", "🥂", "🍻", "🍸", "😊", "😄",
	"welcome", "enjoy", "glad", "pleasure", "friend", "cheers",
}

// GiftDesire computes the probability of an unsolicited gift. Pure: no
// randomness, no side effects — the Bernoulli draw against the result
// happens in the caller. Output is always within [Base, Max].
func GiftDesire(h GiftHeuristic, s GiftSignals) float64 {
	score := h.Base
	if containsAny(s.UserMessage, positiveWords) {
		score += h.SentimentBoost
	}
	if containsAny(s.Reply, warmMarkers) {
		score += h.WarmthBoost
	}
	if s.OwnedCount > h.RegularAfter {
		score += h.RegularBoost
	}
	if score > h.Max {
		score = h.Max
	}
	return score
}

func containsAny(s string, needles []string) bool {
	l := strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(l, n) {
			return true
		}
	}
	return false
}
