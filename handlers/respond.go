package handlers

import (
	"errors"
	"net/http"

	"sokoni/domain"
	"sokoni/middleware"
	"sokoni/services/booking"
	"sokoni/services/cart"
	"sokoni/services/catalog"
	"sokoni/services/order"
	"sokoni/services/quote"
	"sokoni/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps service sentinel errors onto HTTP statuses. Validation
// failures are 400, capability denials 403, missing entities 404, and lost
// compare-and-swap races or rule violations 409. Anything unmapped is an
// internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, booking.ErrValidation),
		errors.Is(err, order.ErrValidation),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, quote.ErrValidation),
		errors.Is(err, user.ErrValidation),
		errors.Is(err, catalog.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, user.ErrBadCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, booking.ErrForbidden),
		errors.Is(err, order.ErrForbidden),
		errors.Is(err, quote.ErrForbidden),
		errors.Is(err, user.ErrForbidden),
		errors.Is(err, catalog.ErrForbidden),
		errors.Is(err, domain.ErrActionForbidden):
		return http.StatusForbidden

	case errors.Is(err, booking.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, quote.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, cart.ErrLineNotFound):
		return http.StatusNotFound

	case errors.Is(err, booking.ErrStatusConflict),
		errors.Is(err, order.ErrStatusConflict),
		errors.Is(err, quote.ErrStatusConflict),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, user.ErrDuplicateEmail),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrTerminalState):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// requireActor reads the authenticated actor or writes a 401.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
	}
	return actor, ok
}

// respondError writes the service error with its mapped status. Internal
// errors are logged and masked.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
