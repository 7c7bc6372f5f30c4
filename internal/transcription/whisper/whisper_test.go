package whisper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/skillsenselab/audioscribe/internal/transcription"
)

func transcriptionRequest(path string) transcription.Request {
	return transcription.Request{AudioPath: path}
}

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("fake-wav-bytes"), 0o600); err != nil {
		t.Fatalf("write temp audio: %v", err)
	}
	return path
}

func TestTranscribe_SendsMultipartForm(t *testing.T) {
	var gotModel, gotCompute, gotFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("path = %q, want /transcribe", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotCompute = r.FormValue("compute_type")
		if f, _, err := r.FormFile("audio"); err == nil {
			buf := make([]byte, 64)
			n, _ := f.Read(buf)
			gotFile = string(buf[:n])
			f.Close()
		}
		w.Write([]byte(`{"text":"привет мир","segments":[{"text":"привет мир","start":0.5,"end":1.4}],"language":"ru"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	p := New(Config{URL: srv.URL, Model: "base"})
	resp, err := p.Transcribe(context.Background(), transcriptionRequest(writeTempAudio(t)))
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if resp.Text != "привет мир" {
		t.Errorf("Text = %q", resp.Text)
	}
	if resp.Language != "ru" {
		t.Errorf("Language = %q", resp.Language)
	}
	if resp.Duration != 1.4 {
		t.Errorf("Duration = %v, want 1.4", resp.Duration)
	}
	if gotModel != "base" {
		t.Errorf("model field = %q, want base", gotModel)
	}
	if gotCompute != "float32" {
		t.Errorf("compute_type field = %q, want float32", gotCompute)
	}
	if gotFile != "fake-wav-bytes" {
		t.Errorf("uploaded file content = %q", gotFile)
	}
}

func TestTranscribe_SidecarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := New(Config{URL: srv.URL})
	if _, err := p.Transcribe(context.Background(), transcriptionRequest(writeTempAudio(t))); err == nil {
		t.Fatal("expected error for sidecar failure")
	}
}

func TestTranscribe_MissingFile(t *testing.T) {
	p := New(Config{URL: "http://localhost:1"})
	if _, err := p.Transcribe(context.Background(), transcriptionRequest("/does/not/exist.wav")); err == nil {
		t.Fatal("expected error for missing audio file")
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := New(Config{URL: srv.URL})
	if !p.IsAvailable(context.Background()) {
		t.Error("IsAvailable = false, want true")
	}

	down := New(Config{URL: "http://localhost:1"})
	if down.IsAvailable(context.Background()) {
		t.Error("IsAvailable = true for unreachable sidecar")
	}
}
