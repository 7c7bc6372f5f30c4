// Package api registers the service's HTTP routes and implements their
// handlers: audio transcription, grammar correction, and the welcome payload.
package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/audioscribe/internal/errors"
)

// WelcomeMessage is the liveness payload for GET /.
const WelcomeMessage = "Welcome to the Audio Scribe API!"

// Recognizer turns a staged audio file into text.
type Recognizer interface {
	Recognize(ctx context.Context, path string) (string, error)
}

// Corrector fixes grammar in a text string.
type Corrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

// Metrics records operation outcomes. Satisfied by observability.Metrics;
// nil disables recording.
type Metrics interface {
	RecordUpload(ctx context.Context, bytes int64)
	RecordTranscription(ctx context.Context, status string, textLength int, duration time.Duration)
	RecordCorrection(ctx context.Context, status string, duration time.Duration)
	RecordError(ctx context.Context, errType, component string)
}

// Handlers holds the API's collaborators.
type Handlers struct {
	recognizer Recognizer
	corrector  Corrector
	metrics    Metrics
	stagingDir string
}

// New creates the API handlers. stagingDir is where uploads are staged;
// empty means the OS temp directory.
func New(recognizer Recognizer, corrector Corrector, metrics Metrics, stagingDir string) *Handlers {
	return &Handlers{
		recognizer: recognizer,
		corrector:  corrector,
		metrics:    metrics,
		stagingDir: stagingDir,
	}
}

// recordError counts a failed operation by error code and component.
func (h *Handlers) recordError(c *gin.Context, err error, component string) {
	if h.metrics == nil {
		return
	}
	errType := "internal"
	if appErr, ok := apperrors.AsAppError(err); ok {
		errType = string(appErr.Code)
	}
	h.metrics.RecordError(c.Request.Context(), errType, component)
}

// RegisterRoutes mounts the API routes on the engine.
func (h *Handlers) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Welcome)
	r.POST("/transcribe", h.Transcribe)
	r.POST("/fix-grammar", h.FixGrammar)
}

// Welcome handles GET /.
func (h *Handlers) Welcome(c *gin.Context) {
	c.JSON(200, gin.H{"message": WelcomeMessage})
}
