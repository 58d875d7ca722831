package store

import (
	"context"

	"acc-portal/internal/domain/billing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DonationRepository struct {
	t table[billing.Donation]
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{t: table[billing.Donation]{db: db, order: "created_at DESC"}}
}

func (r *DonationRepository) List(ctx context.Context) ([]billing.Donation, error) {
	return r.t.list(ctx)
}

func (r *DonationRepository) GetBySession(ctx context.Context, sessionID string) (billing.Donation, error) {
	return r.t.first(ctx, where("stripe_session_id = ?", sessionID))
}

// Upsert inserts d or, when a row for the same Stripe session exists,
// refreshes its payment fields.
func (r *DonationRepository) Upsert(ctx context.Context, d *billing.Donation) error {
	err := r.t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "stripe_session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"payment_intent_id", "donor_name", "donor_email",
			"amount", "currency", "status", "paid_at", "updated_at",
		}),
	}).Create(d).Error
	return translate(err)
}
