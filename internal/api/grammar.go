package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/audioscribe/internal/corrector"
	apperrors "github.com/skillsenselab/audioscribe/internal/errors"
	"github.com/skillsenselab/audioscribe/internal/server"
)

// grammarRequest is the body for POST /fix-grammar. Text is a pointer so a
// missing field is distinguishable from an empty string: the former is a
// malformed request (422), the latter a too-short input (400).
type grammarRequest struct {
	Text *string `json:"text" binding:"required"`
}

// grammarResponse is the success body for POST /fix-grammar.
type grammarResponse struct {
	CorrectedText string `json:"corrected_text"`
}

// FixGrammar handles POST /fix-grammar.
func (h *Handlers) FixGrammar(c *gin.Context) {
	var req grammarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Unprocessable("Request body must be JSON with a required 'text' field."))
		return
	}

	if len(*req.Text) < corrector.MinTextLength {
		server.RespondWithError(c, apperrors.InvalidInput("Text provided is too short for grammar correction."))
		return
	}

	start := time.Now()
	corrected, err := h.corrector.Correct(c.Request.Context(), *req.Text)
	if h.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		h.metrics.RecordCorrection(c.Request.Context(), status, time.Since(start))
	}
	if err != nil {
		h.recordError(c, err, "corrector")
		server.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, grammarResponse{CorrectedText: corrected})
}
