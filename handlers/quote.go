package handlers

import (
	"net/http"

	"sokoni/domain"
	"sokoni/services/quote"

	"github.com/gin-gonic/gin"
)

// QuoteHandler serves the custom-price quote endpoints.
type QuoteHandler struct {
	Quotes quote.QuoteService
}

func NewQuoteHandler(svc quote.QuoteService) *QuoteHandler {
	return &QuoteHandler{Quotes: svc}
}

func (h *QuoteHandler) Request(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input quote.RequestQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	q, err := h.Quotes.Request(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *QuoteHandler) Respond(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input quote.RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	q, err := h.Quotes.Respond(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// Decide applies accept, reject or close, named in the body.
func (h *QuoteHandler) Decide(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input struct {
		Action domain.QuoteAction `json:"action"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	q, err := h.Quotes.Decide(c.Request.Context(), actor, c.Param("id"), input.Action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *QuoteHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	q, err := h.Quotes.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *QuoteHandler) ListMine(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var (
		quotes interface{}
		err    error
	)
	if actor.Role == domain.RoleProvider {
		quotes, err = h.Quotes.ListForProvider(c.Request.Context(), actor, actor.ID)
	} else {
		quotes, err = h.Quotes.ListForCustomer(c.Request.Context(), actor, actor.ID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}
