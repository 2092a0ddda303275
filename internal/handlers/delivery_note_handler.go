package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gestalba/internal/models"
	"gestalba/internal/services"
)

const maxSignatureSize = 5 << 20 // 5MB

type DeliveryNoteHandler struct {
	service services.DeliveryNoteService
}

func NewDeliveryNoteHandler(service services.DeliveryNoteService) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{service: service}
}

type deliveryNoteRequest struct {
	ClientID  int64                      `json:"client_id" binding:"required"`
	ProjectID int64                      `json:"project_id" binding:"required"`
	Format    string                     `json:"format" binding:"required,oneof=hours materials mixed"`
	Entries   []models.DeliveryNoteEntry `json:"entries" binding:"required,min=1"`
}

// @Summary      Create a delivery note (albarán)
// @Tags         DeliveryNote
// @Accept       json
// @Produce      json
// @Param        note  body  deliveryNoteRequest  true  "Delivery note data"
// @Success      201  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string  "client or project not found"
// @Security     BearerAuth
// @Router       /api/deliverynote [post]
func (h *DeliveryNoteHandler) Create(c *gin.Context) {
	var req deliveryNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note := &models.DeliveryNote{
		UserID:    currentUserID(c),
		ClientID:  req.ClientID,
		ProjectID: req.ProjectID,
		Format:    req.Format,
		Entries:   req.Entries,
	}
	if err := h.service.Create(note); err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Client not found"})
		case errors.Is(err, services.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		default:
			log.Printf("[note][create] service error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while creating the delivery note"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Delivery note created", "result": note})
}

func (h *DeliveryNoteHandler) List(c *gin.Context) {
	result, err := h.service.List(currentUserID(c))
	if err != nil {
		log.Printf("[note][list] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while listing delivery notes"})
		return
	}
	if len(result) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No delivery notes found for this user"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *DeliveryNoteHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery note ID"})
		return
	}
	detail, err := h.service.Get(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Delivery note not found for this user"})
			return
		}
		log.Printf("[note][get] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while finding the delivery note"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// PDF redirects to the pinned copy when one exists; otherwise renders the
// note, pins it to IPFS and answers 201 with the fresh URL.
func (h *DeliveryNoteHandler) PDF(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery note ID"})
		return
	}
	url, created, err := h.service.PDF(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Delivery note not found"})
			return
		}
		log.Printf("[note][pdf] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while generating the PDF"})
		return
	}
	if !created {
		c.Redirect(http.StatusFound, url)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "PDF created", "url": url})
}

func (h *DeliveryNoteHandler) Sign(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery note ID"})
		return
	}

	file, err := c.FormFile("signature")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No signature image uploaded"})
		return
	}
	if file.Size > maxSignatureSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature image too large"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read signature image"})
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read signature image"})
		return
	}

	if _, err := h.service.Sign(currentUserID(c), id, data); err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Delivery note not found"})
			return
		}
		log.Printf("[note][sign] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while signing the delivery note"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delivery note signed"})
}

func (h *DeliveryNoteHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery note ID"})
		return
	}
	if err := h.service.Delete(currentUserID(c), id); err != nil {
		switch {
		case errors.Is(err, services.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Delivery note not found"})
		case errors.Is(err, services.ErrNoteSigned):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A signed delivery note cannot be deleted"})
		default:
			log.Printf("[note][delete] service error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while deleting the delivery note"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delivery note deleted"})
}
