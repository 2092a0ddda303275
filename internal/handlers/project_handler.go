package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gestalba/internal/models"
	"gestalba/internal/services"
)

type ProjectHandler struct {
	service services.ProjectService
}

func NewProjectHandler(service services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type projectRequest struct {
	Name        string         `json:"name" binding:"required"`
	ProjectCode string         `json:"projectCode" binding:"required"`
	ClientID    int64          `json:"client_id" binding:"required"`
	Address     models.Address `json:"address"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project := &models.Project{
		UserID:      currentUserID(c),
		ClientID:    req.ClientID,
		Name:        req.Name,
		ProjectCode: req.ProjectCode,
		Address:     req.Address,
	}
	if err := h.service.Create(project); err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "The project's client does not exist"})
		case errors.Is(err, services.ErrProjectExists):
			c.JSON(http.StatusConflict, gin.H{"error": "A project with that code already exists for this user"})
		default:
			log.Printf("[project][create] service error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while registering the project"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Project created", "result": project})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project := &models.Project{
		ID:          id,
		UserID:      currentUserID(c),
		ClientID:    req.ClientID,
		Name:        req.Name,
		ProjectCode: req.ProjectCode,
		Address:     req.Address,
	}
	if err := h.service.Update(project); err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		log.Printf("[project][update] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while updating the project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project updated", "result": project})
}

func (h *ProjectHandler) List(c *gin.Context) {
	result, err := h.service.List(currentUserID(c))
	if err != nil {
		log.Printf("[project][list] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while listing projects"})
		return
	}
	if len(result) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No projects found for this user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Projects found", "result": result})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}
	project, err := h.service.Get(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		log.Printf("[project][get] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while finding the project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project found", "result": project})
}

func (h *ProjectHandler) Archive(c *gin.Context) {
	h.toggle(c, h.service.Archive, "Project archived")
}

func (h *ProjectHandler) Restore(c *gin.Context) {
	h.toggle(c, h.service.Restore, "Project restored")
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	h.toggle(c, h.service.HardDelete, "Project permanently deleted")
}

func (h *ProjectHandler) ListArchived(c *gin.Context) {
	result, err := h.service.ListArchived(currentUserID(c))
	if err != nil {
		log.Printf("[project][archived] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while listing archived projects"})
		return
	}
	if len(result) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No archived projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Archived projects found", "result": result})
}

func (h *ProjectHandler) toggle(c *gin.Context, op func(int64, int64) error, okMsg string) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}
	if err := op(currentUserID(c), id); err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		log.Printf("[project] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": okMsg})
}
