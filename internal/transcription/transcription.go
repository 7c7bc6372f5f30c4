// Package transcription defines the provider interface and common types for
// speech-to-text backends.
package transcription

import "context"

// Provider is the interface that transcription backends must implement.
type Provider interface {
	// Name returns the provider identifier (e.g. "whisper").
	Name() string

	// IsAvailable reports whether the backend is reachable and has its model
	// loaded.
	IsAvailable(ctx context.Context) bool

	// Transcribe sends audio for transcription and returns the result.
	Transcribe(ctx context.Context, req Request) (*Response, error)
}

// Request holds parameters for a transcription call.
type Request struct {
	// AudioPath is the path to the audio file to transcribe.
	AudioPath string `json:"audio_path"`
	// Language is the expected language of the audio (e.g. "ru"). Empty lets
	// the backend auto-detect.
	Language string `json:"language,omitempty"`
	// Model overrides the provider's default model.
	Model string `json:"model,omitempty"`
}

// Response holds the result of a transcription call.
type Response struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Segments contains time-aligned transcript segments.
	Segments []Segment `json:"segments,omitempty"`
	// Duration is the audio duration in seconds.
	Duration float64 `json:"duration,omitempty"`
	// Language is the detected or specified language.
	Language string `json:"language,omitempty"`
}

// Segment represents a time-aligned portion of a transcript.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
