package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/audioscribe/internal/errors"
	"github.com/skillsenselab/audioscribe/internal/logger"
)

// RespondWithError inspects err: if it is an *apperrors.AppError the status
// and structured body are derived automatically; otherwise a generic 500 is
// sent and the fault detail logged rather than leaked.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		if appErr.HTTPStatus >= 500 {
			logger.Error("Request failed", logger.ErrorFields(c.FullPath(), err))
		}
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	logger.Error("Unhandled error", logger.ErrorFields(c.FullPath(), err))
	c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}

// RespondOK sends a 200 response with the given body as-is.
func RespondOK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}
