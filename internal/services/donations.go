package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"acc-portal/internal/domain/billing"
	"acc-portal/internal/domain/validation"
	"acc-portal/internal/store"
)

// ErrInvalidWebhook is returned when a payment webhook cannot be verified
// or decoded.
var ErrInvalidWebhook = errors.New("invalid webhook")

// CheckoutProvider is the payment processor behind donations.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, amount int64, currency, email string) (id, url string, err error)
	ParseWebhook(payload []byte, signature string) (*billing.Donation, error)
}

type DonationRepository interface {
	List(ctx context.Context) ([]billing.Donation, error)
	GetBySession(ctx context.Context, sessionID string) (billing.Donation, error)
	Upsert(ctx context.Context, d *billing.Donation) error
}

type DonationService struct {
	repo     DonationRepository
	provider CheckoutProvider
	currency string
}

// NewDonationService accepts a nil provider; checkout then reports
// ErrNotConfigured.
func NewDonationService(repo DonationRepository, provider CheckoutProvider, currency string) *DonationService {
	if currency == "" {
		currency = "usd"
	}
	return &DonationService{repo: repo, provider: provider, currency: currency}
}

type CheckoutInput struct {
	Amount int64  `json:"amount"`
	Email  string `json:"email"`
}

// Checkout opens a payment session and records a pending donation.
func (s *DonationService) Checkout(ctx context.Context, in CheckoutInput) (string, error) {
	if s.provider == nil {
		return "", ErrNotConfigured
	}
	if in.Amount < billing.MinDonationMinor {
		return "", validation.Newf("amount", "must be at least %d", billing.MinDonationMinor)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return "", validation.New("email", "must be a valid email address")
		}
	}

	id, url, err := s.provider.CreateSession(ctx, in.Amount, s.currency, email)
	if err != nil {
		return "", err
	}
	d := billing.Donation{
		StripeSessionID: id,
		DonorEmail:      email,
		Amount:          in.Amount,
		Currency:        s.currency,
		Status:          billing.DonationPending,
	}
	if err := s.repo.Upsert(ctx, &d); err != nil {
		return "", err
	}
	return url, nil
}

// HandleWebhook records the donation a verified webhook describes. It
// returns false for events that carry no donation.
func (s *DonationService) HandleWebhook(ctx context.Context, payload []byte, signature string) (bool, error) {
	if s.provider == nil {
		return false, ErrNotConfigured
	}
	d, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		return false, errors.Join(ErrInvalidWebhook, err)
	}
	if d == nil {
		return false, nil
	}

	// Webhooks may omit fields the checkout already stored.
	if prev, err := s.repo.GetBySession(ctx, d.StripeSessionID); err == nil {
		if d.DonorEmail == "" {
			d.DonorEmail = prev.DonorEmail
		}
		if d.Amount == 0 {
			d.Amount = prev.Amount
		}
		if d.Currency == "" {
			d.Currency = prev.Currency
		}
		if d.PaidAt == nil {
			d.PaidAt = prev.PaidAt
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}
	if d.Currency == "" {
		d.Currency = s.currency
	}
	if err := s.repo.Upsert(ctx, d); err != nil {
		return false, err
	}
	return true, nil
}

func (s *DonationService) List(ctx context.Context) ([]billing.Donation, error) {
	return s.repo.List(ctx)
}
