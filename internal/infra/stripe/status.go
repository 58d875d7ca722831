package stripe

import (
	"strings"

	"acc-portal/internal/domain/billing"
)

// DonationStatus maps a Checkout Session's status and payment_status to
// the donation status stored locally.
func DonationStatus(sessionStatus, paymentStatus string) string {
	switch strings.TrimSpace(paymentStatus) {
	case "paid", "no_payment_required":
		return billing.DonationPaid
	}
	switch strings.TrimSpace(sessionStatus) {
	case "expired":
		return billing.DonationExpired
	case "complete":
		return billing.DonationUnpaid
	}
	return billing.DonationPending
}
