package handlers

import (
	"net/http"

	apperrors "skybook/internal/errors"
	"skybook/internal/logger"
	"skybook/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

// respondError maps domain error kinds to HTTP status codes. Conflicts
// (taken seat, duplicate payment, illegal transition) are 409 so clients can
// distinguish a lost race from a bad request.
func respondError(c *gin.Context, err error, msg string) {
	status := http.StatusInternalServerError

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrSeatUnavailable),
		apperrors.Is(err, apperrors.ErrPaymentExists),
		apperrors.Is(err, apperrors.ErrDiscountAlreadyApplied),
		apperrors.Is(err, apperrors.ErrInvalidStateTransition):
		status = http.StatusConflict
	case apperrors.Is(err, apperrors.ErrDiscountExpired),
		apperrors.Is(err, apperrors.ErrInsufficientPoints):
		status = http.StatusUnprocessableEntity
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case apperrors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error(msg, "error", err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
