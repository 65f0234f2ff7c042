package correct

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestNewCohereClient - Construction validation
// ---------------------------------------------------------------------------

func TestNewCohereClient(t *testing.T) {
	t.Parallel()

	if _, err := NewCohereClient("", "model", "key", time.Second); !errors.Is(err, ErrEmptyBaseURL) {
		t.Errorf("empty base URL error = %v, want ErrEmptyBaseURL", err)
	}
	if _, err := NewCohereClient("https://api.example.com", "model", "", time.Second); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("empty key error = %v, want ErrMissingAPIKey", err)
	}
	if _, err := NewCohereClient("https://api.example.com", "model", "key", time.Second); err != nil {
		t.Errorf("valid settings error = %v, want nil", err)
	}
}

// ---------------------------------------------------------------------------
// TestCohereClientCorrect - Request shape and reply handling
// ---------------------------------------------------------------------------

func TestCohereClientCorrect(t *testing.T) {
	t.Parallel()

	t.Run("sends chat request and returns trimmed text", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("Authorization = %q", got)
			}
			if got := r.Header.Get("Content-Type"); got != "application/json" {
				t.Errorf("Content-Type = %q", got)
			}

			var req chatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decoding request: %v", err)
			}
			if req.Model != "command-test" {
				t.Errorf("model = %q", req.Model)
			}
			if req.Temperature != 0 {
				t.Errorf("temperature = %v, want 0", req.Temperature)
			}
			if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "corrige ça" {
				t.Errorf("messages = %+v", req.Messages)
			}

			w.Header().Set("Content-Type", "application/json")
			if _, err := w.Write([]byte(`{"message":{"content":[` +
				`{"type":"text","text":"  Corrigé"},` +
				`{"type":"citation","text":"ignored"},` +
				`{"type":"text","text":" !  "}]}}`)); err != nil {
				t.Error(err)
			}
		}))
		defer srv.Close()

		client, err := NewCohereClient(srv.URL, "command-test", "test-key", 5*time.Second)
		if err != nil {
			t.Fatal(err)
		}

		got, err := client.Correct(context.Background(), "corrige ça")
		if err != nil {
			t.Fatalf("Correct() error = %v, want nil", err)
		}
		if want := "Corrigé !"; got != want {
			t.Errorf("Correct() = %q, want %q", got, want)
		}
	})

	t.Run("non-2xx status fails", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client, err := NewCohereClient(srv.URL, "m", "k", 5*time.Second)
		if err != nil {
			t.Fatal(err)
		}

		if _, err := client.Correct(context.Background(), "texte"); !errors.Is(err, ErrAPIStatus) {
			t.Errorf("Correct() error = %v, want ErrAPIStatus", err)
		}
	})

	t.Run("canceled context fails", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()

		client, err := NewCohereClient(srv.URL, "m", "k", 5*time.Second)
		if err != nil {
			t.Fatal(err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := client.Correct(ctx, "texte"); err == nil {
			t.Error("Correct() error = nil, want context error")
		}
	})
}
