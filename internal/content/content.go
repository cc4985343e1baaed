package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/garnizeh/learnprofile/internal/config"
)

var (
	// ErrGateway wraps any failure to obtain text from the provider.
	ErrGateway = errors.New("content generation failed")
	// ErrEmptyPrompt is returned before any provider call for a blank prompt.
	ErrEmptyPrompt = errors.New("prompt is empty")
)

// Generator is a single-shot text generation backend.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// HealthChecker is implemented by generators that can probe their backend
// without generating text.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Gateway renders prompts and forwards them to a Generator exactly once.
type Gateway struct {
	gen     Generator
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

func NewGateway(gen Generator, cfg config.ContentConfig, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Gateway{gen: gen, model: cfg.Model, timeout: cfg.Timeout, logger: logger}
}

// GenerateContent returns the provider's text for the templated prompt,
// unmodified. Provider errors and blank responses yield ErrGateway.
func (g *Gateway) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	rendered, err := RenderPrompt(prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGateway, err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := g.gen.Generate(ctx, rendered)
	latency := time.Since(start)
	if err != nil {
		g.logger.Error("content generation failed",
			slog.String("model", g.model), slog.Duration("latency", latency), slog.Any("err", err))
		return "", fmt.Errorf("%w: %w", ErrGateway, err)
	}
	if strings.TrimSpace(text) == "" {
		g.logger.Warn("content generation returned no text", slog.String("model", g.model))
		return "", fmt.Errorf("%w: empty response", ErrGateway)
	}

	g.logger.Info("content generated",
		slog.String("model", g.model), slog.Duration("latency", latency), slog.Int("chars", len(text)))
	return text, nil
}

// Close releases the underlying generator when it holds resources.
func (g *Gateway) Close() error {
	if c, ok := g.gen.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Health probes the generator's backend when it supports it. Generators
// without a probe report healthy.
func (g *Gateway) Health(ctx context.Context) error {
	hc, ok := g.gen.(HealthChecker)
	if !ok {
		return nil
	}
	if err := hc.Health(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrGateway, err)
	}
	return nil
}
