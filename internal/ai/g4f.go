package ai

import (
	"net/http"
	"strings"
	"time"
)

type G4FProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewG4FProvider parses engine strings like:
//
//	g4f:gpt-oss-120b
//	g4f:groq/qwen/qwen3-32b
func NewG4FProvider(engine string) *G4FProvider {
	parts := strings.SplitN(engine, ":", 2)
	target := "gpt-oss-120b"
	if len(parts) == 2 && parts[1] != "" {
		target = parts[1]
	}

	var base, model string
	switch {
	case strings.HasPrefix(target, "groq/"):
		base = "https://g4f.dev/api/groq"
		model = strings.TrimPrefix(target, "groq/")
	default:
		base = "https://g4f.dev/api/gpt-oss-120b"
		model = target
	}

	return &G4FProvider{
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *G4FProvider) Generate(messages []Message) (string, error) {
	return completionRequest(p.client, p.baseURL+"/chat/completions", "g4f",
		map[string]interface{}{
			"model":    p.model,
			"messages": messages,
		})
}
