package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"olive-mind/internal/events"
	"olive-mind/internal/middleware"
	"olive-mind/internal/storage"
)

type MessageHandler struct {
	Repo        storage.Repository
	Coordinator *events.Coordinator
}

func NewMessageHandler(repo storage.Repository, coordinator *events.Coordinator) *MessageHandler {
	return &MessageHandler{Repo: repo, Coordinator: coordinator}
}

func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.Repo.ListMessages(c.Request.Context())
	if err != nil {
		log.Println("Failed to list messages:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

type MarkSentRequest struct {
	Sent *bool `json:"sent" binding:"required"`
}

// MarkSent flips the sent flag. The mobile client calls this after a share
// or copy action; the server never sets it on its own.
func (h *MessageHandler) MarkSent(c *gin.Context) {
	var req MarkSentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	err := h.Coordinator.MarkMessageSent(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), *req.Sent)
	if err != nil {
		writeCoordinatorError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message updated."})
}
