// Package sections serves the page-builder section API.
package sections

import (
	"context"
	"net/http"
	"strings"

	"acc-portal/internal/api/respond"
	domain "acc-portal/internal/domain/sections"
	"acc-portal/internal/domain/site"

	"github.com/gin-gonic/gin"
)

type Service interface {
	List(ctx context.Context) ([]domain.Section, error)
	ListPage(ctx context.Context, page site.Page) ([]domain.Section, error)
	Get(ctx context.Context, id string) (domain.Section, error)
	Create(ctx context.Context, in domain.Input) (domain.Section, error)
	Update(ctx context.Context, id string, p domain.Patch) (domain.Section, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, page site.Page, ids []string) ([]domain.Section, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// GET /sections?page=
func (h *Handler) List(c *gin.Context) {
	var (
		list []domain.Section
		err  error
	)
	if p := strings.TrimSpace(c.Query("page")); p != "" {
		page, perr := site.ParsePage(p)
		if perr != nil {
			respond.Error(c, perr)
			return
		}
		list, err = h.svc.ListPage(c.Request.Context(), page)
	} else {
		list, err = h.svc.List(c.Request.Context())
	}
	if err != nil {
		respond.Error(c, err)
		return
	}
	if list == nil {
		list = []domain.Section{}
	}
	c.JSON(http.StatusOK, list)
}

// GET /sections/:id
func (h *Handler) Get(c *gin.Context) {
	sec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, sec)
}

// POST /sections
func (h *Handler) Create(c *gin.Context) {
	var in domain.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "Invalid JSON body")
		return
	}
	sec, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, sec)
}

// PATCH /sections/:id
func (h *Handler) Update(c *gin.Context) {
	var p domain.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		respond.BadRequest(c, "Invalid JSON body")
		return
	}
	sec, err := h.svc.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, sec)
}

type reorderRequest struct {
	Page site.Page `json:"page"`
	IDs  []string  `json:"ids"`
}

// PUT /sections/reorder
func (h *Handler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "Invalid JSON body")
		return
	}
	list, err := h.svc.Reorder(c.Request.Context(), req.Page, req.IDs)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DELETE /sections/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Deleted(c)
}
