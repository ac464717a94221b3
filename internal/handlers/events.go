package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"olive-mind/internal/events"
	"olive-mind/internal/middleware"
	"olive-mind/internal/models"
	"olive-mind/internal/storage"
)

// EventHandler exposes the calendar: reads go straight to the repository,
// writes go through the coordinator so the message and payment cascade
// always runs.
type EventHandler struct {
	Repo        storage.Repository
	Coordinator *events.Coordinator
}

func NewEventHandler(repo storage.Repository, coordinator *events.Coordinator) *EventHandler {
	return &EventHandler{Repo: repo, Coordinator: coordinator}
}

// writeCoordinatorError maps the coordinator's error taxonomy onto HTTP.
func writeCoordinatorError(c *gin.Context, err error) {
	var validationErr *events.ValidationError
	var partialErr *events.PartialFailureError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, events.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only managers may do that."})
	// A partial failure unwraps to its cause, which may itself be
	// ErrNotFound, so it has to be recognised before the plain 404.
	case errors.As(err, &partialErr):
		log.Println("Partial failure:", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "Event was saved but generating its message or payments failed. Use regenerate to recover.",
			"event_id": partialErr.EventID,
		})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
	default:
		log.Println("Storage error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
	}
}

func (h *EventHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		list []models.Event
		err  error
	)
	if date := c.Query("date"); date != "" {
		list, err = h.Repo.ListEventsByDate(ctx, date)
	} else {
		list, err = h.Repo.ListAllEvents(ctx)
	}
	if err != nil {
		log.Println("Failed to list events:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch events"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *EventHandler) Create(c *gin.Context) {
	var draft models.EventDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	event, err := h.Coordinator.CreateEvent(c.Request.Context(), middleware.SessionFrom(c), draft)
	if err != nil {
		writeCoordinatorError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	var patch models.EventPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	event, err := h.Coordinator.UpdateEvent(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), patch)
	if err != nil {
		writeCoordinatorError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	err := h.Coordinator.DeleteEvent(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		writeCoordinatorError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted."})
}

func (h *EventHandler) Regenerate(c *gin.Context) {
	err := h.Coordinator.RegenerateDependents(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		writeCoordinatorError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message and payments regenerated."})
}
