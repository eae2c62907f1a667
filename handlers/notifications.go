package handlers

import (
	"net/http"

	recordsRepo "sokoni/database/repository/records"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the in-app notification feed written by the
// event worker.
type NotificationHandler struct {
	Records recordsRepo.RecordsRepository
}

func NewNotificationHandler(records recordsRepo.RecordsRepository) *NotificationHandler {
	return &NotificationHandler{Records: records}
}

func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	notifications, err := h.Records.ListNotifications(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}
	if err := h.Records.MarkNotificationRead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked read"})
}
