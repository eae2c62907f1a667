package handlers

import (
	"net/http"

	"sokoni/domain"
	"sokoni/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the service-booking lifecycle endpoints.
type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: svc}
}

func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Bookings.Create(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// Transition applies one lifecycle action named in the body: accept, reject,
// enroute, start, complete or cancel.
func (h *BookingHandler) Transition(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input struct {
		Action domain.BookingAction `json:"action"`
		Reason string               `json:"reason,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Bookings.Transition(c.Request.Context(), actor, c.Param("id"), input.Action, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	b, err := h.Bookings.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMine returns the actor's bookings from whichever side of the
// marketplace they act on.
func (h *BookingHandler) ListMine(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var (
		bookings interface{}
		err      error
	)
	if actor.Role == domain.RoleProvider {
		bookings, err = h.Bookings.ListForProvider(c.Request.Context(), actor, actor.ID)
	} else {
		bookings, err = h.Bookings.ListForCustomer(c.Request.Context(), actor, actor.ID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
