package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gestalba/internal/services"
)

type VerifyHandler struct {
	service services.VerificationService
}

func NewVerifyHandler(service services.VerificationService) *VerifyHandler {
	return &VerifyHandler{service: service}
}

type verifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// @Summary      Verify a user by email code
// @Description  Checks the 6-digit code mailed to the user. Resends a code when the record is missing, the code expired or a block was lifted.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        verification  body  verifyRequest  true  "Email and code"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string  "incorrect code"
// @Failure      404  {object}  map[string]string  "unknown user"
// @Failure      409  {object}  map[string]string  "already verified"
// @Failure      410  {object}  map[string]string  "code expired, new one sent"
// @Failure      423  {object}  map[string]string  "user blocked"
// @Security     BearerAuth
// @Router       /api/verification [post]
func (h *VerifyHandler) VerifyUser(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.service.Attempt(req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "The user does not exist"})
		case errors.Is(err, services.ErrAlreadyVerified):
			c.JSON(http.StatusConflict, gin.H{"error": "The user is already verified"})
		case errors.Is(err, services.ErrUserBlocked):
			c.JSON(http.StatusLocked, gin.H{"error": "User blocked"})
		case errors.Is(err, services.ErrCodeExpired):
			c.JSON(http.StatusGone, gin.H{"error": "Code expired. A new one has been sent"})
		case errors.Is(err, services.ErrCodeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect code, try again"})
		default:
			log.Printf("[verify] server error for %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while verifying the user"})
		}
		return
	}

	switch outcome {
	case services.OutcomeCodeSent:
		c.JSON(http.StatusOK, gin.H{"message": "Code sent to email. Try verifying the user now"})
	case services.OutcomeBlockCleared:
		c.JSON(http.StatusOK, gin.H{"message": "Block lifted. Try verifying again"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "User verified"})
	}
}
