package donations

import (
	"context"
	"io"
	"log"
	"net/http"

	"acc-portal/internal/api/respond"
	"acc-portal/internal/domain/billing"
	"acc-portal/internal/services"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Checkout(ctx context.Context, in services.CheckoutInput) (string, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (bool, error)
	List(ctx context.Context) ([]billing.Donation, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// POST /donations/checkout
func (h *Handler) Checkout(c *gin.Context) {
	var in services.CheckoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "Missing or invalid amount")
		return
	}
	url, err := h.svc.Checkout(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

const maxWebhookBody = 65536

// POST /webhooks/stripe
func (h *Handler) StripeWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	recorded, err := h.svc.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		log.Println("❌ Stripe webhook:", err)
		respond.Error(c, err)
		return
	}
	if !recorded {
		// Acknowledge unrelated events so Stripe stops retrying them.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// GET /donations
func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	if list == nil {
		list = []billing.Donation{}
	}
	c.JSON(http.StatusOK, list)
}
