package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/audioscribe/internal/errors"
	"github.com/skillsenselab/audioscribe/internal/logger"
	"github.com/skillsenselab/audioscribe/internal/server"
	"github.com/skillsenselab/audioscribe/internal/upload"
)

// transcribeResponse is the success body for POST /transcribe.
type transcribeResponse struct {
	Filename      string `json:"filename"`
	Transcription string `json:"transcription"`
}

// Transcribe handles POST /transcribe: stage the multipart upload, run
// recognition, and guarantee the staged file is removed on every path.
func (h *Handlers) Transcribe(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("No file was uploaded."))
		return
	}
	if fileHeader.Size == 0 {
		server.RespondWithError(c, apperrors.InvalidInput("No file was uploaded."))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	defer src.Close()

	staged, err := upload.Stage(h.stagingDir, fileHeader.Filename, src)
	if err != nil {
		logger.Error("failed to stage upload", logger.ErrorFields("stage", err))
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	defer func() {
		if rmErr := staged.Remove(); rmErr != nil {
			logger.Warn("failed to remove staged upload", logger.ErrorFields("cleanup", rmErr))
		}
	}()

	if h.metrics != nil {
		h.metrics.RecordUpload(c.Request.Context(), fileHeader.Size)
	}

	start := time.Now()
	text, err := h.recognizer.Recognize(c.Request.Context(), staged.Path)
	if h.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		h.metrics.RecordTranscription(c.Request.Context(), status, len(text), time.Since(start))
	}
	if err != nil {
		h.recordError(c, err, "recognizer")
		server.RespondWithError(c, err)
		return
	}

	// Empty text is a valid outcome for silent audio.
	c.JSON(http.StatusOK, transcribeResponse{
		Filename:      staged.Filename,
		Transcription: text,
	})
}
