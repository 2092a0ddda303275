package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gestalba/internal/models"
	"gestalba/internal/services"
)

type ClientHandler struct {
	service services.ClientService
}

func NewClientHandler(service services.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type clientRequest struct {
	Name    string         `json:"name"`
	CIF     string         `json:"cif" binding:"required,len=9"`
	Address models.Address `json:"address"`
}

// @Summary      Create a client
// @Tags         Client
// @Accept       json
// @Produce      json
// @Param        client  body  clientRequest  true  "Client data"
// @Success      201  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string  "duplicate CIF for this user"
// @Security     BearerAuth
// @Router       /api/client [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := &models.Client{
		UserID:  currentUserID(c),
		Name:    req.Name,
		CIF:     req.CIF,
		Address: req.Address,
	}
	if err := h.service.Create(client); err != nil {
		if errors.Is(err, services.ErrClientExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "A client with that CIF already exists for this user"})
			return
		}
		log.Printf("[client][create] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while registering the client"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Client created", "result": client})
}

// Update identifies the client by CIF, like the create flow.
func (h *ClientHandler) Update(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := &models.Client{
		UserID:  currentUserID(c),
		Name:    req.Name,
		CIF:     req.CIF,
		Address: req.Address,
	}
	if err := h.service.UpdateByCIF(client); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "The client does not exist"})
			return
		}
		log.Printf("[client][update] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while updating the client"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Information updated"})
}

func (h *ClientHandler) List(c *gin.Context) {
	result, err := h.service.List(currentUserID(c))
	if err != nil {
		log.Printf("[client][list] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while listing clients"})
		return
	}
	if len(result) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No clients found for this user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Clients found", "result": result})
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
		return
	}
	client, err := h.service.Get(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		log.Printf("[client][get] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while finding the client"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client found", "result": client})
}

func (h *ClientHandler) Archive(c *gin.Context) {
	h.toggle(c, h.service.Archive, "Client archived")
}

func (h *ClientHandler) Restore(c *gin.Context) {
	h.toggle(c, h.service.Restore, "Client restored")
}

func (h *ClientHandler) Delete(c *gin.Context) {
	h.toggle(c, h.service.HardDelete, "Client permanently deleted")
}

func (h *ClientHandler) ListArchived(c *gin.Context) {
	result, err := h.service.ListArchived(currentUserID(c))
	if err != nil {
		log.Printf("[client][archived] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while listing archived clients"})
		return
	}
	if len(result) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No archived clients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Archived clients found", "result": result})
}

func (h *ClientHandler) toggle(c *gin.Context, op func(int64, int64) error, okMsg string) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
		return
	}
	if err := op(currentUserID(c), id); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		log.Printf("[client] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": okMsg})
}
