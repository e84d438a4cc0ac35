package catalog

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// Match is one lookup candidate. Score is normalized to 0..100, where an
// exact display name scores 100.
type Match struct {
	ID    string
	Name  string
	Score int
}

// String implements fuzzy.Source together with Len.
func (c *Catalog) String(i int) string {
	return c.items[i].Name
}

// Search resolves a free-text query against display names and returns up to
// limit matches by descending score, ties broken by catalog order. minScore
// gates low-confidence results: 0 accepts the best available match, 80 is
// the usual confidence gate. Deterministic — no randomness — so lookups are
// reproducible.
func (c *Catalog) Search(query string, limit, minScore int) []Match {
	if query == "" || limit <= 0 {
		return nil
	}

	// Score of the query matched against itself is the ceiling used for
	// normalization.
	self := fuzzy.Find(query, []string{query})
	if len(self) == 0 {
		return nil
	}
	selfScore := self[0].Score

	found := fuzzy.FindFrom(query, c)
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Score != found[j].Score {
			return found[i].Score > found[j].Score
		}
		return found[i].Index < found[j].Index
	})

	var out []Match
	for _, m := range found {
		score := normalizeScore(m.Score, selfScore)
		if score < minScore {
			continue
		}
		it := c.items[m.Index]
		out = append(out, Match{ID: it.ID, Name: it.Name, Score: score})
		if len(out) == limit {
			break
		}
	}
	return out
}

func normalizeScore(score, selfScore int) int {
	if selfScore <= 0 {
		return 0
	}
	n := score * 100 / selfScore
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
