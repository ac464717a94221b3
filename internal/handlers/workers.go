package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"olive-mind/internal/models"
	"olive-mind/internal/storage"
)

// WorkerHandler exposes the promoter registry. Workers are independent of
// the event pipeline: events reference promoters by name, and the only
// automatic write to this collection is the owing adjustment the
// coordinator makes when a payment is marked paid.
type WorkerHandler struct {
	Repo storage.Repository
}

func NewWorkerHandler(repo storage.Repository) *WorkerHandler {
	return &WorkerHandler{Repo: repo}
}

func (h *WorkerHandler) List(c *gin.Context) {
	workers, err := h.Repo.ListWorkers(c.Request.Context())
	if err != nil {
		log.Println("Failed to list workers:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch workers"})
		return
	}

	c.JSON(http.StatusOK, workers)
}

func (h *WorkerHandler) Create(c *gin.Context) {
	var draft models.WorkerDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if draft.Rating == 0 {
		draft.Rating = 5
	}

	worker, err := h.Repo.InsertWorker(c.Request.Context(), draft)
	if err != nil {
		log.Println("Failed to insert worker:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save worker"})
		return
	}

	c.JSON(http.StatusCreated, worker)
}

func (h *WorkerHandler) Update(c *gin.Context) {
	var draft models.WorkerDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	worker, err := h.Repo.UpdateWorker(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		log.Println("Failed to update worker:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save worker"})
		return
	}

	c.JSON(http.StatusOK, worker)
}

func (h *WorkerHandler) Delete(c *gin.Context) {
	err := h.Repo.DeleteWorker(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		log.Println("Failed to delete worker:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete worker"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Worker deleted."})
}
