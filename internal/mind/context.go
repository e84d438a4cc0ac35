package mind

import (
	"strings"

	"barkeep/internal/ai"
)

// maxHistoryChars caps how much window history goes into a prompt. LLMs sit
// around 4 chars per token for English; this is roughly 800 tokens.
const maxHistoryChars = 3200

// BuildMessages assembles the provider message slice: system prompt first,
// then the conversation window oldest to newest. The current user message is
// expected to be the last line of the window.
func BuildMessages(systemPrompt string, lines []Line) []ai.Message {
	msgs := []ai.Message{
		{Role: "system", Content: strings.TrimSpace(systemPrompt)},
	}

	// Walk backwards until the budget is spent, then emit forward.
	var budget int
	start := 0
	for i := len(lines) - 1; i >= 0; i-- {
		budget += len(lines[i].Content)
		if budget > maxHistoryChars {
			start = i + 1
			break
		}
	}

	for _, l := range lines[start:] {
		if l.FromBot {
			msgs = append(msgs, ai.Message{Role: "assistant", Content: l.Content})
			continue
		}
		msgs = append(msgs, ai.Message{Role: "user", Content: l.Username + ": " + l.Content})
	}
	return msgs
}
