// Package recognizer turns uploaded audio files into text. It normalizes the
// audio, limits concurrent recognition with a bulkhead, and maps backend
// failures to typed errors.
package recognizer

import (
	"context"
	"errors"
	"os"
	"strings"

	apperrors "github.com/skillsenselab/audioscribe/internal/errors"
	"github.com/skillsenselab/audioscribe/internal/logger"
	"github.com/skillsenselab/audioscribe/internal/resilience"
	"github.com/skillsenselab/audioscribe/internal/transcription"
)

// Normalizer prepares an audio file for recognition and returns the path of
// the normalized copy.
type Normalizer interface {
	Normalize(ctx context.Context, path string) (string, error)
}

// Recognizer coordinates audio normalization and speech-to-text.
type Recognizer struct {
	provider   transcription.Provider
	normalizer Normalizer
	bulkhead   *resilience.Bulkhead
	available  bool
	log        *logger.Logger
}

// New creates a Recognizer. Provider availability is probed once here; a
// backend that is down at startup stays marked unavailable for the life of
// the process.
func New(ctx context.Context, provider transcription.Provider, normalizer Normalizer, cfg Config, log *logger.Logger) *Recognizer {
	cfg.ApplyDefaults()
	log = log.WithComponent("recognizer")

	available := provider.IsAvailable(ctx)
	if !available {
		log.Error("transcription backend unavailable at startup", logger.Fields(
			"provider", provider.Name(),
		))
	}

	return &Recognizer{
		provider:   provider,
		normalizer: normalizer,
		bulkhead: resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "recognizer",
			MaxConcurrent: cfg.MaxConcurrent,
			MaxWait:       cfg.QueuePatience,
		}),
		available: available,
		log:       log,
	}
}

// Available reports whether the recognition backend was reachable at startup.
func (r *Recognizer) Available() bool { return r.available }

// Recognize transcribes the audio file at path and returns the trimmed text.
func (r *Recognizer) Recognize(ctx context.Context, path string) (string, error) {
	if !r.available {
		return "", apperrors.ServiceUnavailable("speech recognition",
			"Speech recognition model failed to load at startup. Cannot transcribe.")
	}

	normalized, err := r.normalizer.Normalize(ctx, path)
	if err != nil {
		// Undecodable input and any other normalization fault surface the
		// same way: the caller only learns the service could not process
		// the audio.
		r.log.Error("audio normalization failed", logger.ErrorFields("normalize", err))
		return "", apperrors.ExternalService("speech recognition",
			"Transcription service failed to process the audio.").WithCause(err)
	}
	defer func() {
		if rmErr := os.Remove(normalized); rmErr != nil && !os.IsNotExist(rmErr) {
			r.log.Warn("failed to remove normalized audio", logger.ErrorFields("cleanup", rmErr))
		}
	}()

	resp, err := resilience.ExecuteWithResult(r.bulkhead, ctx, func() (*transcription.Response, error) {
		return r.provider.Transcribe(ctx, transcription.Request{AudioPath: normalized})
	})
	if err != nil {
		if errors.Is(err, resilience.ErrBulkheadFull) || errors.Is(err, resilience.ErrBulkheadTimeout) {
			return "", apperrors.ServiceUnavailable("speech recognition",
				"Transcription service is at capacity. Please retry shortly.")
		}
		r.log.Error("transcription failed", logger.ErrorFields("transcribe", err))
		return "", apperrors.ExternalService("speech recognition",
			"Transcription service failed to process the audio.").WithCause(err)
	}

	return strings.TrimSpace(resp.Text), nil
}
