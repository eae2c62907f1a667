package handlers

import (
	"net/http"

	recordsRepo "sokoni/database/repository/records"
	"sokoni/domain"
	"sokoni/services/booking"
	"sokoni/services/user"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves support and back-office endpoints. The routes are
// gated on the admin role; service-level checks apply again underneath.
type AdminHandler struct {
	Users    user.UserService
	Bookings booking.BookingService
	Records  recordsRepo.RecordsRepository
}

func NewAdminHandler(users user.UserService, bookings booking.BookingService, records recordsRepo.RecordsRepository) *AdminHandler {
	return &AdminHandler{Users: users, Bookings: bookings, Records: records}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	users, err := h.Users.ListUsers(c.Request.Context(), actor, c.Query("role"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// OverrideBookingStatus sets a booking status outside the regular lifecycle,
// for refunds and dispute resolution.
func (h *AdminHandler) OverrideBookingStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input struct {
		Status domain.BookingStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Bookings.OverrideStatus(c.Request.Context(), actor, c.Param("id"), input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListEarnings returns a provider's earnings ledger.
func (h *AdminHandler) ListEarnings(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	providerID := c.Param("providerID")
	if !actor.IsAdmin() && actor.ID != providerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed for this account"})
		return
	}
	earnings, err := h.Records.ListEarnings(c.Request.Context(), providerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"earnings": earnings})
}
