package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pollpulse/internal/transport/httpdto"
	pollpulse_errors "pollpulse/pkg/errors"
	"pollpulse/pkg/logger"
)

// respondError maps domain errors to HTTP responses. Everything in the
// taxonomy surfaces with its message; unexpected errors are logged and
// hidden behind a generic 500.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		if log != nil {
			log.WithContext(c.Request.Context()).Sugar().Errorf("request failed: %v", err)
		}
		c.JSON(status, httpdto.NewErrorResponse("internal error", code))
		return
	}
	c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, pollpulse_errors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, pollpulse_errors.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, pollpulse_errors.ErrPollInactive):
		return http.StatusBadRequest, "POLL_INACTIVE"
	case errors.Is(err, pollpulse_errors.ErrOptionNotFound):
		return http.StatusBadRequest, "OPTION_NOT_FOUND"
	case errors.Is(err, pollpulse_errors.ErrOptionMismatch):
		return http.StatusBadRequest, "OPTION_MISMATCH"
	case errors.Is(err, pollpulse_errors.ErrDuplicateVote):
		return http.StatusBadRequest, "DUPLICATE_VOTE"
	case errors.Is(err, pollpulse_errors.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, pollpulse_errors.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, pollpulse_errors.ErrAlreadyExists):
		return http.StatusConflict, "ALREADY_EXISTS"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
