package ai

import (
	"fmt"
	"strings"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Provider interface {
	Generate(messages []Message) (string, error)
}

// Apology is what patrons see when the provider fails. The core never
// retries a failed completion synchronously.
const Apology = "the tap is acting up. Give me a minute. 🍺"

// DefaultProvider picks a provider from the configured engine string.
// An unknown engine is a configuration error for the caller to surface at
// startup, not something to discover mid-conversation.
func DefaultProvider(engine string) (Provider, error) {
	switch {
	case engine == "" || engine == "pollinations":
		return NewPollinationsProvider(), nil
	case strings.HasPrefix(engine, "g4f"):
		return NewG4FProvider(engine), nil
	default:
		return nil, fmt.Errorf("unsupported AI_PROVIDER %q", engine)
	}
}
