package ai

import (
	"net/http"
	"time"
)

// PollinationsProvider talks to the free text.pollinations.ai endpoint,
// which proxies an OpenAI-compatible chat API.
type PollinationsProvider struct {
	client *http.Client
	model  string
}

func NewPollinationsProvider() *PollinationsProvider {
	return &PollinationsProvider{
		client: &http.Client{Timeout: 25 * time.Second},
		model:  "openai",
	}
}

func (p *PollinationsProvider) Generate(messages []Message) (string, error) {
	return completionRequest(p.client, "https://text.pollinations.ai/openai", "pollinations",
		map[string]interface{}{
			"model":       p.model,
			"messages":    messages,
			"temperature": 1,
			"private":     true,
		})
}
