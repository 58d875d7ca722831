package theme

import (
	"context"
	"net/http"

	"acc-portal/internal/api/respond"
	"acc-portal/internal/events"
	domain "acc-portal/internal/theme"

	"github.com/gin-gonic/gin"
)

type Store interface {
	Get() domain.Config
	Update(p domain.Patch) (domain.Config, error)
}

type Handler struct {
	store  Store
	events events.Notifier
}

func NewHandler(store Store, n events.Notifier) *Handler {
	return &Handler{store: store, events: n}
}

// GET /theme
func (h *Handler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Get())
}

// PUT /theme accepts a full or partial theme.
func (h *Handler) Update(c *gin.Context) {
	var p domain.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		respond.BadRequest(c, "Invalid JSON body")
		return
	}
	cfg, err := h.Save(c.Request.Context(), p)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// Save applies p and announces the change. The admin console shares it.
func (h *Handler) Save(ctx context.Context, p domain.Patch) (domain.Config, error) {
	cfg, err := h.store.Update(p)
	if err != nil {
		return domain.Config{}, err
	}
	h.events.Notify(ctx, events.Change{Entity: "theme", Action: events.Updated})
	return cfg, nil
}
