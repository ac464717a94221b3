package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"olive-mind/internal/events"
	"olive-mind/internal/middleware"
	"olive-mind/internal/storage"
)

type PaymentHandler struct {
	Repo        storage.Repository
	Coordinator *events.Coordinator
}

func NewPaymentHandler(repo storage.Repository, coordinator *events.Coordinator) *PaymentHandler {
	return &PaymentHandler{Repo: repo, Coordinator: coordinator}
}

func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.Repo.ListPayments(c.Request.Context())
	if err != nil {
		log.Println("Failed to list payments:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

type MarkPaidRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}

func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	err := h.Coordinator.MarkPaymentPaid(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), *req.Paid)
	if err != nil {
		writeCoordinatorError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment updated."})
}
