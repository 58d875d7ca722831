package content

import (
	"context"
	"net/http"

	"acc-portal/internal/api/respond"
	domain "acc-portal/internal/domain/content"

	"github.com/gin-gonic/gin"
)

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (domain.Category, error)
	Create(ctx context.Context, c domain.Category) (domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type CategoryHandler struct {
	svc CategoryService
}

func NewCategoryHandler(svc CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	if items == nil {
		items = []domain.Category{}
	}
	c.JSON(http.StatusOK, items)
}

// GET /categories/:slug returns the category with its articles.
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	cat, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var in domain.Category
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "Invalid JSON body")
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Deleted(c)
}
