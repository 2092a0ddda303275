package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gestalba/internal/models"
	"gestalba/internal/services"
)

type CompanyHandler struct {
	service services.CompanyService
	users   services.UserService
}

func NewCompanyHandler(service services.CompanyService, users services.UserService) *CompanyHandler {
	return &CompanyHandler{service: service, users: users}
}

type companyRequest struct {
	Name    string         `json:"name" binding:"required"`
	CIF     string         `json:"cif" binding:"required,len=9"`
	Address models.Address `json:"address"`
}

type addUserRequest struct {
	CIF   string `json:"cif" binding:"required,len=9"`
	Email string `json:"email" binding:"required,email"`
}

// callerEmail resolves the authenticated user's email from the token claim.
func (h *CompanyHandler) callerEmail(c *gin.Context) (string, bool) {
	user, err := h.users.GetByID(currentUserID(c))
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		return "", false
	}
	return user.Email, true
}

func (h *CompanyHandler) CreateOrJoin(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email, ok := h.callerEmail(c)
	if !ok {
		return
	}

	company := &models.Company{
		Name:    req.Name,
		CIF:     req.CIF,
		Address: req.Address,
	}
	created, err := h.service.CreateOrJoin(email, company)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyMember):
			c.JSON(http.StatusConflict, gin.H{"error": "The user is already registered in this company"})
		case errors.Is(err, services.ErrCIFTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Duplicate CIF. Please check the submitted data"})
		default:
			log.Printf("[company][create] service error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while registering the company"})
		}
		return
	}
	if created {
		c.JSON(http.StatusCreated, gin.H{"message": "Company created and user registered in it", "result": company})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User added to the company"})
}

func (h *CompanyHandler) AddUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.AddUser(req.CIF, req.Email); err != nil {
		switch {
		case errors.Is(err, services.ErrCompanyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		case errors.Is(err, services.ErrAlreadyMember):
			c.JSON(http.StatusConflict, gin.H{"error": "The user is already registered in this company"})
		default:
			log.Printf("[company][add-user] service error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while adding the user"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User added to the company"})
}

func (h *CompanyHandler) MyCompany(c *gin.Context) {
	email, ok := h.callerEmail(c)
	if !ok {
		return
	}
	company, err := h.service.MyCompany(email)
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "The user does not belong to any company"})
			return
		}
		log.Printf("[company][my] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while finding the company"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company found", "result": company})
}
