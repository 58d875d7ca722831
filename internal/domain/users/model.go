package users

import (
	"net/mail"
	"strings"
	"time"

	"acc-portal/internal/domain/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleViewer
}

type User struct {
	ID           string  `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string  `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string  `gorm:"column:password_hash" json:"-"`
	Name         string  `json:"name"`
	Role         Role    `gorm:"type:user_role;not null;default:viewer" json:"role"`
	GoogleSub    *string `gorm:"uniqueIndex" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	if err := validation.Required("email", email); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return validation.New("email", "must be a valid email address")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return validation.New("password", "must be at least 6 characters long")
	}
	return nil
}

func ValidateRole(role Role) error {
	if !role.Valid() {
		return validation.Newf("role", "must be one of admin, editor, viewer (got %q)", role)
	}
	return nil
}
