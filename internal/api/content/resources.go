package content

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"acc-portal/internal/api/respond"
	domain "acc-portal/internal/domain/content"

	"github.com/gin-gonic/gin"
)

type ResourceService interface {
	List(ctx context.Context, q domain.ResourceQuery) ([]domain.Resource, domain.PageMeta, error)
	Get(ctx context.Context, id string) (domain.Resource, error)
	Create(ctx context.Context, r domain.Resource) (domain.Resource, error)
	Update(ctx context.Context, id string, p domain.ResourcePatch) (domain.Resource, error)
	Delete(ctx context.Context, id string) error
}

type ResourceHandler struct {
	svc ResourceService
}

func NewResourceHandler(svc ResourceService) *ResourceHandler {
	return &ResourceHandler{svc: svc}
}

type resourceList struct {
	Data []domain.Resource `json:"data"`
	Meta domain.PageMeta   `json:"meta"`
}

// GET /resources?page=&limit=&search=&type=
func (h *ResourceHandler) List(c *gin.Context) {
	q := domain.ResourceQuery{
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
		Search: strings.TrimSpace(c.Query("search")),
		Type:   domain.ResourceType(strings.ToUpper(strings.TrimSpace(c.Query("type")))),
	}
	items, meta, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if items == nil {
		items = []domain.Resource{}
	}
	c.JSON(http.StatusOK, resourceList{Data: items, Meta: meta})
}

// Unparseable numbers fall back to the defaults.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// GET /resources/:id
func (h *ResourceHandler) Get(c *gin.Context) {
	r, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// POST /resources
func (h *ResourceHandler) Create(c *gin.Context) {
	var in domain.Resource
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "Invalid JSON body")
		return
	}
	r, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// PATCH /resources/:id
func (h *ResourceHandler) Update(c *gin.Context) {
	var p domain.ResourcePatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respond.BadRequest(c, "Invalid JSON body")
		return
	}
	r, err := h.svc.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// DELETE /resources/:id
func (h *ResourceHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Deleted(c)
}
