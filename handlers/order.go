package handlers

import (
	"net/http"

	"sokoni/domain"
	"sokoni/services/order"

	"github.com/gin-gonic/gin"
)

// OrderHandler serves checkout and fulfillment endpoints.
type OrderHandler struct {
	Orders order.OrderService
}

func NewOrderHandler(svc order.OrderService) *OrderHandler {
	return &OrderHandler{Orders: svc}
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input order.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	o, err := h.Orders.Checkout(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) Transition(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input order.TransitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	o, err := h.Orders.Transition(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	o, err := h.Orders.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// ListMine returns the actor's orders: purchases for customers, incoming
// orders for sellers.
func (h *OrderHandler) ListMine(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var (
		orders interface{}
		err    error
	)
	if actor.Role == domain.RoleSeller {
		orders, err = h.Orders.ListForSeller(c.Request.Context(), actor, actor.ID)
	} else {
		orders, err = h.Orders.ListForCustomer(c.Request.Context(), actor, actor.ID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
