package handlers

import (
	"net/http"
	"strconv"

	"sokoni/models"
	"sokoni/services/cart"

	"github.com/gin-gonic/gin"
)

// CartHandler serves the server-side cart endpoints.
type CartHandler struct {
	Cart cart.CartService
}

func NewCartHandler(svc cart.CartService) *CartHandler {
	return &CartHandler{Cart: svc}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userCart, err := h.Cart.Get(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userCart)
}

func (h *CartHandler) AddLine(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var line models.CartLine
	if err := c.ShouldBindJSON(&line); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	userCart, err := h.Cart.AddLine(c.Request.Context(), actor.ID, line)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userCart)
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be an integer"})
		return
	}
	userCart, err := h.Cart.UpdateQuantity(c.Request.Context(), actor.ID, c.Param("productID"), quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userCart)
}

func (h *CartHandler) RemoveLine(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userCart, err := h.Cart.RemoveLine(c.Request.Context(), actor.ID, c.Param("productID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userCart)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.Cart.Clear(c.Request.Context(), actor.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
