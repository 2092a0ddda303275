package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gestalba/internal/models"
	"gestalba/internal/services"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	NIF      string `json:"nif"`
}

type completeInfoRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname" binding:"required"`
	NIF     string `json:"nif" binding:"required"`
}

// @Summary      Register a new user
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        user  body  registerRequest  true  "Registration data"
// @Success      201  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string  "email already in use"
// @Router       /api/user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		Email:   req.Email,
		Name:    req.Name,
		Surname: req.Surname,
		NIF:     req.NIF,
	}
	if err := h.service.Register(user, req.Password); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use. Please register with another email"})
			return
		}
		log.Printf("[user][register] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while registering the user"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created", "result": user})
}

// @Summary      Log in
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        login  body  models.LoginRequest  true  "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string  "email not verified"
// @Failure      403  {object}  map[string]string  "wrong password"
// @Failure      404  {object}  map[string]string  "unknown user"
// @Router       /api/user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "The user does not exist"})
		case errors.Is(err, services.ErrNotVerified):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "The user has not been verified. Please verify the email first"})
		case errors.Is(err, services.ErrWrongPassword):
			c.JSON(http.StatusForbidden, gin.H{"error": "The password is incorrect"})
		default:
			log.Printf("[user][login] service error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while logging in"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token, "user": user})
}

func (h *UserHandler) CompleteInfo(c *gin.Context) {
	var req completeInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.CompleteProfile(req.Email, req.Name, req.Surname, req.NIF); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found. Check the email address"})
			return
		}
		log.Printf("[user][complete-info] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while updating the user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Information updated"})
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.service.GetByID(currentUserID(c))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
