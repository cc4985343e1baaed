package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/garnizeh/learnprofile/internal/config"
	"github.com/garnizeh/learnprofile/internal/content"
)

var defaultClient = &http.Client{
	Transport: &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 15 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	},
}

// content-client sends one prompt through the configured provider and prints
// the formatted answer. Useful for checking API keys and model names; for
// Ollama it first checks that the server has a model pulled.
func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	provider := flag.String("provider", "", "Override content provider (gemini, openai, ollama, mock)")
	prompt := flag.String("prompt", "Görsel öğrenme stiline sahip bir öğrenci", "Prompt to send")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *provider != "" {
		cfg.Content.Provider = *provider
		cfg.Content.Model = ""
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	gen, err := content.NewGenerator(ctx, cfg, defaultClient)
	if err != nil {
		log.Fatal(err)
	}
	gw := content.NewGateway(gen, cfg.Content, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	defer gw.Close()

	if err := gw.Health(ctx); err != nil {
		log.Fatal(err)
	}

	text, err := gw.GenerateContent(ctx, *prompt)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(text)
}
