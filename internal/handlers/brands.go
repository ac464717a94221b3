package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"olive-mind/internal/middleware"
	"olive-mind/internal/models"
	"olive-mind/internal/storage"
)

// BrandHandler exposes brand briefs and brand notes: shared write-ups of
// how each brand wants to be represented at activations. Both are plain
// documents, not part of the event pipeline.
type BrandHandler struct {
	Repo storage.Repository
}

func NewBrandHandler(repo storage.Repository) *BrandHandler {
	return &BrandHandler{Repo: repo}
}

func (h *BrandHandler) ListBriefs(c *gin.Context) {
	briefs, err := h.Repo.ListBrandBriefs(c.Request.Context())
	if err != nil {
		log.Println("Failed to list brand briefs:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch brand briefs"})
		return
	}

	c.JSON(http.StatusOK, briefs)
}

func (h *BrandHandler) CreateBrief(c *gin.Context) {
	var draft models.BrandBriefDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	brief, err := h.Repo.InsertBrandBrief(c.Request.Context(), draft, middleware.SessionFrom(c).UserID)
	if err != nil {
		log.Println("Failed to insert brand brief:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save brand brief"})
		return
	}

	c.JSON(http.StatusCreated, brief)
}

func (h *BrandHandler) UpdateBrief(c *gin.Context) {
	var draft models.BrandBriefDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	brief, err := h.Repo.UpdateBrandBrief(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		log.Println("Failed to update brand brief:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save brand brief"})
		return
	}

	c.JSON(http.StatusOK, brief)
}

func (h *BrandHandler) DeleteBrief(c *gin.Context) {
	err := h.Repo.DeleteBrandBrief(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		log.Println("Failed to delete brand brief:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete brand brief"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Brand brief deleted."})
}

func (h *BrandHandler) ListNotes(c *gin.Context) {
	notes, err := h.Repo.ListBrandNotes(c.Request.Context())
	if err != nil {
		log.Println("Failed to list brand notes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch brand notes"})
		return
	}

	c.JSON(http.StatusOK, notes)
}

func (h *BrandHandler) CreateNote(c *gin.Context) {
	var draft models.BrandNoteDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	note, err := h.Repo.InsertBrandNote(c.Request.Context(), draft, middleware.SessionFrom(c).UserID)
	if err != nil {
		log.Println("Failed to insert brand note:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save brand note"})
		return
	}

	c.JSON(http.StatusCreated, note)
}

func (h *BrandHandler) UpdateNote(c *gin.Context) {
	var draft models.BrandNoteDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	note, err := h.Repo.UpdateBrandNote(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		log.Println("Failed to update brand note:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save brand note"})
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *BrandHandler) DeleteNote(c *gin.Context) {
	err := h.Repo.DeleteBrandNote(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		log.Println("Failed to delete brand note:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete brand note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Brand note deleted."})
}
