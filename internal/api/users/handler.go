package users

import (
	"context"
	"net/http"

	"acc-portal/internal/api/respond"
	"acc-portal/internal/app/http/middleware"
	"acc-portal/internal/domain/users"
	"acc-portal/internal/domain/validation"
	"acc-portal/internal/services"

	"github.com/gin-gonic/gin"
)

type Service interface {
	List(ctx context.Context) ([]users.User, error)
	Get(ctx context.Context, id string) (users.User, error)
	Create(ctx context.Context, in services.CreateUserInput) (users.User, error)
	Update(ctx context.Context, id string, p services.UserPatch) (users.User, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// GET /users
func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	if list == nil {
		list = []users.User{}
	}
	c.JSON(http.StatusOK, list)
}

// GET /users/:id
func (h *Handler) Get(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// POST /users
func (h *Handler) Create(c *gin.Context) {
	var in services.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "Invalid JSON body")
		return
	}
	u, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// PATCH /users/:id
func (h *Handler) Update(c *gin.Context) {
	var p services.UserPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respond.BadRequest(c, "Invalid JSON body")
		return
	}
	if claims, ok := middleware.Claims(c); ok && claims.UserID == c.Param("id") &&
		p.Role != nil && *p.Role != claims.Role {
		respond.Error(c, validation.New("role", "you cannot change your own role"))
		return
	}
	u, err := h.svc.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DELETE /users/:id
func (h *Handler) Delete(c *gin.Context) {
	if claims, ok := middleware.Claims(c); ok && claims.UserID == c.Param("id") {
		respond.Error(c, validation.New("id", "you cannot delete your own account"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Deleted(c)
}
