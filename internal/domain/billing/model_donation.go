package billing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DonationPending  = "pending"
	DonationPaid     = "paid"
	DonationExpired  = "expired"
	DonationUnpaid   = "unpaid"
	MinDonationMinor = 100
)

// Donation is one Stripe Checkout payment. StripeSessionID is unique so
// repeated webhook deliveries update the same row.
type Donation struct {
	ID              string     `gorm:"type:uuid;primaryKey" json:"id"`
	StripeSessionID string     `gorm:"not null;uniqueIndex" json:"stripeSessionId"`
	PaymentIntentID string     `json:"paymentIntentId,omitempty"`
	DonorName       string     `json:"donorName,omitempty"`
	DonorEmail      string     `json:"donorEmail,omitempty"`
	Amount          int64      `gorm:"not null" json:"amount"`
	Currency        string     `gorm:"not null" json:"currency"`
	Status          string     `gorm:"not null;default:pending" json:"status"`
	PaidAt          *time.Time `json:"paidAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
