package services

import (
	"errors"

	"acc-portal/internal/domain/site"
	"acc-portal/internal/domain/validation"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown email or
// a wrong password alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotConfigured is returned by optional integrations that have no
// settings.
var ErrNotConfigured = errors.New("not configured")

func validationPage(p site.Page) error {
	return validation.Newf("page", "unknown page %q", p)
}
