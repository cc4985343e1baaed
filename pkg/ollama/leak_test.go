package ollama_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/garnizeh/learnprofile/internal/config"
	"github.com/garnizeh/learnprofile/pkg/ollama"
)

// Concurrent generations share one client; goleak in TestMain checks that
// closing the client and the server leaves no stray goroutines.
func TestClient_ConcurrentGenerateThenClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(`{"model":"m","response":"ok","done":true}` + "\n"))
	}))
	defer srv.Close()

	c, err := ollama.NewClient(config.OllamaConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, srv.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.Generate(context.Background(), "m", "hi")
			if err != nil {
				t.Errorf("generate: %v", err)
				return
			}
			if res.Text != "ok" {
				t.Errorf("unexpected text %q", res.Text)
			}
		}()
	}
	wg.Wait()

	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	srv.CloseClientConnections()
}
