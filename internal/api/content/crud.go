// Package content serves the JSON API for articles, categories, events,
// profiles, projects and generic resources.
package content

import (
	"context"
	"net/http"

	"acc-portal/internal/api/respond"

	"github.com/gin-gonic/gin"
)

// Service is the use-case surface shared by the editable collections.
type Service[T any, P any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, id string, p P) (T, error)
	Delete(ctx context.Context, id string) error
}

// CRUD serves list/get/create/patch/delete for one collection.
type CRUD[T any, P any] struct {
	svc Service[T, P]
}

func NewCRUD[T any, P any](svc Service[T, P]) *CRUD[T, P] {
	return &CRUD[T, P]{svc: svc}
}

// GET /<collection>
func (h *CRUD[T, P]) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

// GET /<collection>/:id
func (h *CRUD[T, P]) Get(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// POST /<collection>
func (h *CRUD[T, P]) Create(c *gin.Context) {
	var in T
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "Invalid JSON body")
		return
	}
	v, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// PATCH /<collection>/:id
func (h *CRUD[T, P]) Update(c *gin.Context) {
	var p P
	if err := c.ShouldBindJSON(&p); err != nil {
		respond.BadRequest(c, "Invalid JSON body")
		return
	}
	v, err := h.svc.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /<collection>/:id
func (h *CRUD[T, P]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Deleted(c)
}
