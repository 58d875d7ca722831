package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"acc-portal/config"
	"acc-portal/internal/domain/billing"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
	"github.com/stripe/stripe-go/v75/webhook"
)

// ErrSignature is returned when a webhook payload fails verification.
var ErrSignature = errors.New("stripe signature verification failed")

// Checkout creates donation Checkout Sessions and decodes webhooks.
type Checkout struct {
	api           *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewCheckout(cfg config.StripeConfig) *Checkout {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &Checkout{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
	}
}

// CreateSession opens a one-off payment session for amount (minor units).
func (c *Checkout) CreateSession(ctx context.Context, amount int64, currency, email string) (id, url string, err error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
		SubmitType: stripe.String("donate"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Donation"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{"kind": "donation"},
	}
	if email != "" {
		params.CustomerEmail = stripe.String(email)
	}
	params.Context = ctx

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", "", fmt.Errorf("create checkout session: %w", err)
	}
	return s.ID, s.URL, nil
}

// ParseWebhook verifies payload and returns the donation it describes, or
// nil for event types that do not touch donations.
func (c *Checkout) ParseWebhook(payload []byte, signature string) (*billing.Donation, error) {
	if c.webhookSecret == "" {
		return nil, errors.New("STRIPE_WEBHOOK_SECRET not configured")
	}
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignature, err)
	}

	switch string(event.Type) {
	case "checkout.session.completed",
		"checkout.session.async_payment_succeeded",
		"checkout.session.async_payment_failed",
		"checkout.session.expired":
	default:
		return nil, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("parse checkout session: %w", err)
	}
	return donationFromSession(&session), nil
}

func donationFromSession(s *stripe.CheckoutSession) *billing.Donation {
	d := &billing.Donation{
		StripeSessionID: s.ID,
		Amount:          s.AmountTotal,
		Currency:        strings.ToLower(string(s.Currency)),
		Status:          DonationStatus(string(s.Status), string(s.PaymentStatus)),
	}
	if s.PaymentIntent != nil {
		d.PaymentIntentID = s.PaymentIntent.ID
	}
	if s.CustomerDetails != nil {
		d.DonorName = s.CustomerDetails.Name
		d.DonorEmail = s.CustomerDetails.Email
	}
	if d.DonorEmail == "" {
		d.DonorEmail = s.CustomerEmail
	}
	if d.Status == billing.DonationPaid {
		now := time.Now()
		d.PaidAt = &now
	}
	return d
}
