package contact

import (
	"context"
	"net/http"

	"acc-portal/internal/api/respond"
	domain "acc-portal/internal/domain/contact"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Submit(ctx context.Context, m domain.Message) (domain.Message, error)
	List(ctx context.Context) ([]domain.Message, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// POST /contact
func (h *Handler) Submit(c *gin.Context) {
	var in submitRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "Invalid JSON body")
		return
	}
	m, err := h.svc.Submit(c.Request.Context(), domain.Message{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Thanks, we will be in touch.", "id": m.ID})
}

// GET /contact
func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	if list == nil {
		list = []domain.Message{}
	}
	c.JSON(http.StatusOK, list)
}
