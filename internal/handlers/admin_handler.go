package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/middleware"
	"taskhub/internal/models"
	"taskhub/internal/services"
)

// AdminHandler handles user administration requests
type AdminHandler struct {
	adminService services.AdminServicer
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService services.AdminServicer) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// CreateUserRequest represents the admin user creation payload
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Role     string `json:"role" binding:"required,user_role"`
	IsActive *bool  `json:"isActive"`
}

// GetAllUsers lists all user accounts
// @Summary     List users
// @Description List all user accounts, password excluded
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.User
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Router      /admin/users [get]
func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// CreateUserAccount creates a user with a caller-specified role
// @Summary     Create user account
// @Description Create a user account with a caller-specified role; returns a token for the new account
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateUserRequest true "Account data"
// @Success     201 {object} AuthResponse "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate username/email"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Router      /admin/users [post]
func (h *AdminHandler) CreateUserAccount(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.adminService.CreateUser(actor.ID, req.Username, req.Email, req.Password, models.Role(req.Role), req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Token for the new account, not the acting admin.
	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User account created successfully",
		"token":   token,
		"user":    userResponse(user),
	})
}

// DeactivateUserAccount deactivates a user account
// @Summary     Deactivate user
// @Description Set isActive false on the target account; self-deactivation is blocked
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path uint true "User ID"
// @Success     200 {object} map[string]interface{} "Confirmation and updated user"
// @Failure     403 {object} ErrorResponse "Self-deactivation or not an admin"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /admin/users/deactivate/{id} [put]
func (h *AdminHandler) DeactivateUserAccount(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	targetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.adminService.DeactivateUser(actor.ID, targetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User %s deactivated successfully", user.Username),
		"user":    userResponse(user),
	})
}

// ActivateUserAccount reactivates a user account
// @Summary     Activate user
// @Description Set isActive true on the target account
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path uint true "User ID"
// @Success     200 {object} map[string]interface{} "Confirmation and updated user"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /admin/users/activate/{id} [put]
func (h *AdminHandler) ActivateUserAccount(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	targetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.adminService.ActivateUser(actor.ID, targetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User %s activated successfully", user.Username),
		"user":    userResponse(user),
	})
}
