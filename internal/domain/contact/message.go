package contact

import (
	"net/mail"
	"strings"
	"time"

	"acc-portal/internal/domain/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"not null" json:"email"`
	Subject   string `json:"subject"`
	Message   string `gorm:"type:text;not null" json:"message"`
	Forwarded bool   `gorm:"not null;default:false" json:"forwarded"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Message) TableName() string { return "contact_messages" }

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

const maxMessageLen = 5000

func (m *Message) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)
}

func (m Message) Validate() error {
	err := validation.First(
		validation.Required("name", m.Name),
		validation.Required("email", m.Email),
		validation.Required("message", m.Message),
	)
	if err != nil {
		return err
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return validation.New("email", "must be a valid email address")
	}
	if len(m.Message) > maxMessageLen {
		return validation.Newf("message", "must be at most %d characters", maxMessageLen)
	}
	return nil
}
