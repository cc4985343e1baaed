package main

import (
	"net/http"
	"time"

	"github.com/garnizeh/learnprofile/internal/config"
)

// providerSlack is added on top of the provider deadline so a timed-out
// provider call can still be answered with a JSON error.
const providerSlack = 5 * time.Second

// requestTimeout bounds a whole request, body read and response write
// included. It covers the longest provider call the configuration allows;
// with no provider deadline it is zero, meaning unbounded.
func requestTimeout(cfg *config.Config) time.Duration {
	provider := cfg.Content.Timeout
	if cfg.Content.Provider == config.ProviderOllama && cfg.Ollama.Timeout > provider {
		provider = cfg.Ollama.Timeout
	}
	if provider <= 0 {
		return 0
	}
	return max(cfg.APITimeout, provider+providerSlack)
}

// newHTTPServer applies the API timeout to request headers only. The read
// deadline stays armed while a handler runs and cancels the request context
// when it fires, so ReadTimeout must not be shorter than a provider call.
func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	timeout := requestTimeout(cfg)
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.APITimeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       60 * time.Second,
	}
}
