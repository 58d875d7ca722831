package authapi

import (
	"context"
	"net/http"

	"acc-portal/internal/api/respond"
	"acc-portal/internal/app/http/middleware"
	"acc-portal/internal/auth"
	"acc-portal/internal/domain/access"
	"acc-portal/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type UserService interface {
	Authenticate(ctx context.Context, email, password string) (users.User, error)
	Get(ctx context.Context, id string) (users.User, error)
	ChangePassword(ctx context.Context, id, current, next string) error
	SignInWithGoogle(ctx context.Context, sub, email string) (users.User, error)
}

type Handler struct {
	users  UserService
	issuer *auth.Issuer
}

func NewHandler(users UserService, issuer *auth.Issuer) *Handler {
	return &Handler{users: users, issuer: issuer}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	User        users.User `json:"user"`
}

// POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "Email and password are required")
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		respond.Error(c, err)
		return
	}

	token, err := h.issuer.Issue(u)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{AccessToken: token, User: u})
}

type MeResponse struct {
	User   users.User    `json:"user"`
	Policy access.Policy `json:"policy"`
}

// GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	u, err := h.users.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, MeResponse{User: u, Policy: access.ComputePolicy(u.Role)})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// POST /auth/change-password
func (h *Handler) ChangePassword(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var in changePasswordRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "Invalid input")
		return
	}
	if err := h.users.ChangePassword(c.Request.Context(), claims.UserID, in.CurrentPassword, in.NewPassword); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
