package corrector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/skillsenselab/audioscribe/internal/errors"
	"github.com/skillsenselab/audioscribe/internal/logger"
)

const candidateResponse = `{
	"candidates": [
		{"content": {"parts": [{"text": "  This is the corrected text.  "}]}}
	],
	"modelVersion": "gemini-2.5-flash"
}`

func testConfig(url string) Config {
	return Config{
		APIKey:       "test-key",
		BaseURL:      url,
		Model:        "gemini-2.5-flash",
		Timeout:      5 * time.Second,
		MaxAttempts:  4,
		RetryBackoff: time.Millisecond,
	}
}

func newTestCorrector(t *testing.T, cfg Config) *Corrector {
	t.Helper()
	c, err := New(cfg, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestCorrect_TrimsResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key query param = %q, want test-key", r.URL.Query().Get("key"))
		}
		w.Write([]byte(candidateResponse)) //nolint:errcheck
	}))
	defer srv.Close()

	c := newTestCorrector(t, testConfig(srv.URL))
	got, err := c.Correct(context.Background(), "this is teh corrected text")
	if err != nil {
		t.Fatalf("Correct failed: %v", err)
	}
	if got != "This is the corrected text." {
		t.Errorf("result = %q, want trimmed text", got)
	}
}

func TestCorrect_RetriesRateLimitThenSucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(candidateResponse)) //nolint:errcheck
	}))
	defer srv.Close()

	c := newTestCorrector(t, testConfig(srv.URL))
	if _, err := c.Correct(context.Background(), "some text to fix up"); err != nil {
		t.Fatalf("Correct failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("upstream called %d times, want 3", calls)
	}
}

func TestCorrect_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestCorrector(t, testConfig(srv.URL))
	_, err := c.Correct(context.Background(), "some text to fix up")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 4 {
		t.Errorf("upstream called %d times, want 4", calls)
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("error is not an AppError: %v", err)
	}
	if appErr.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", appErr.HTTPStatus)
	}
}

func TestCorrect_NoRetryOnBadRequest(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestCorrector(t, testConfig(srv.URL))
	if _, err := c.Correct(context.Background(), "some text to fix up"); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if calls != 1 {
		t.Errorf("upstream called %d times, want 1", calls)
	}
}

func TestCorrect_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := newTestCorrector(t, testConfig(srv.URL))
	_, err := c.Correct(context.Background(), "some text to fix up")
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("error is not an AppError: %v", err)
	}
	if appErr.Message != "Grammar correction failed to return a result." {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestCorrect_MissingAPIKeyFailsFastWithoutNetwork(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""
	c := newTestCorrector(t, cfg)

	if c.Available() {
		t.Error("corrector without credentials reports available")
	}
	_, err := c.Correct(context.Background(), "some text to fix up")
	if err == nil {
		t.Fatal("expected error without credentials")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("error is not an AppError: %v", err)
	}
	if appErr.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", appErr.HTTPStatus)
	}
	if calls != 0 {
		t.Errorf("upstream called %d times, want 0", calls)
	}
}
