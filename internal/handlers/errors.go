package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/milk_supply_chain/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForError maps a ledger error to its HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInsufficientStock), errors.Is(err, apperrors.ErrQuotaExceeded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body for err. Internal failures are logged
// and reported with fallbackMsg only.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	status := statusForError(err)
	kind := apperrors.Kind(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallbackMsg, "kind": kind})
		return
	}
	logger.Warn("Request rejected", slog.String("kind", kind), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}
