package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gestalba/internal/services"
)

const maxLogoSize = 5 << 20 // 5MB

type LogoHandler struct {
	service    services.LogoService
	storageDir string
	publicURL  string
}

func NewLogoHandler(service services.LogoService, storageDir, publicURL string) *LogoHandler {
	return &LogoHandler{service: service, storageDir: storageDir, publicURL: publicURL}
}

// Upload saves the image under the storage root and links it to the
// authenticated user. Files are served back at /public/<filename>.
func (h *LogoHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
		return
	}
	if file.Size > maxLogoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := fmt.Sprintf("file-%d%s", time.Now().UnixNano(), ext)

	if err := os.MkdirAll(h.storageDir, 0o755); err != nil {
		log.Printf("[logo] storage dir: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while saving the logo"})
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(h.storageDir, filename)); err != nil {
		log.Printf("[logo] save file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while saving the logo"})
		return
	}

	url := h.publicURL + "/public/" + filename
	logo, err := h.service.Attach(currentUserID(c), filename, url)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Could not attach the logo to the user"})
			return
		}
		log.Printf("[logo] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while registering the logo"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Logo created", "result": logo})
}
