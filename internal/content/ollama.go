package content

import (
	"context"

	"github.com/garnizeh/learnprofile/pkg/ollama"
)

// OllamaGenerator adapts the local Ollama client to Generator.
type OllamaGenerator struct {
	client *ollama.Client
	model  string
}

func NewOllamaGenerator(client *ollama.Client, model string) *OllamaGenerator {
	return &OllamaGenerator{client: client, model: model}
}

func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := g.client.Generate(ctx, g.model, prompt)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (g *OllamaGenerator) Close() error {
	return g.client.Close()
}

// Health checks that the Ollama server answers and has at least one model.
func (g *OllamaGenerator) Health(ctx context.Context) error {
	return g.client.Health(ctx)
}
