package content

import (
	"context"
	"fmt"
	"net/http"

	"github.com/garnizeh/learnprofile/internal/config"
	"github.com/garnizeh/learnprofile/pkg/ollama"
)

// NewGenerator builds the provider named by cfg.Content.Provider. httpClient
// may be nil to use each SDK's default.
func NewGenerator(ctx context.Context, cfg *config.Config, httpClient *http.Client) (Generator, error) {
	cc := cfg.Content

	var (
		gen Generator
		err error
	)
	switch cc.Provider {
	case config.ProviderGemini, "":
		gen, err = NewGeminiGenerator(ctx, cc.APIKey, cc.Model, cc.BaseURL, httpClient)
	case config.ProviderOpenAI:
		gen, err = NewOpenAIGenerator(cc.APIKey, cc.Model, cc.BaseURL, httpClient)
	case config.ProviderOllama:
		oc := cfg.Ollama
		if cc.BaseURL != "" {
			oc.BaseURL = cc.BaseURL
		}
		var client *ollama.Client
		if httpClient != nil {
			client, err = ollama.NewClient(oc, httpClient)
		} else {
			client, err = ollama.NewDefaultClient(oc)
		}
		if err == nil {
			gen = NewOllamaGenerator(client, cc.Model)
		}
	case config.ProviderMock:
		return NewMockGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown content provider: %q", cc.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cc.Provider, err)
	}

	return gen, nil
}
