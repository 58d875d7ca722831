package content

import (
	"strings"
	"time"

	"acc-portal/internal/domain/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventType string

const (
	EventOnline   EventType = "Online"
	EventInPerson EventType = "In-Person"
)

func (t EventType) Valid() bool {
	return t == EventOnline || t == EventInPerson
}

type Event struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string    `gorm:"not null" json:"title"`
	Date             string    `gorm:"not null" json:"date"`
	Time             string    `gorm:"not null" json:"time"`
	Location         string    `gorm:"not null" json:"location"`
	Type             EventType `gorm:"type:event_type;not null;default:In-Person" json:"type"`
	Description      string    `gorm:"type:text;not null" json:"description"`
	ImageURL         string    `json:"imageUrl"`
	RegistrationLink string    `json:"registrationLink,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

func (e *Event) Normalize() {
	e.Title = strings.TrimSpace(e.Title)
	if e.Type == "" {
		e.Type = EventInPerson
	}
}

func (e Event) Validate() error {
	err := validation.First(
		validation.Required("title", e.Title),
		validation.Required("date", e.Date),
		validation.Required("location", e.Location),
	)
	if err != nil {
		return err
	}
	if !e.Type.Valid() {
		return validation.Newf("type", "must be one of Online, In-Person (got %q)", e.Type)
	}
	return nil
}

type EventPatch struct {
	Title            *string    `json:"title"`
	Date             *string    `json:"date"`
	Time             *string    `json:"time"`
	Location         *string    `json:"location"`
	Type             *EventType `json:"type"`
	Description      *string    `json:"description"`
	ImageURL         *string    `json:"imageUrl"`
	RegistrationLink *string    `json:"registrationLink"`
}

func (p EventPatch) Apply(e *Event) {
	setString(&e.Title, p.Title)
	setString(&e.Date, p.Date)
	setString(&e.Time, p.Time)
	setString(&e.Location, p.Location)
	if p.Type != nil {
		e.Type = *p.Type
	}
	setString(&e.Description, p.Description)
	setString(&e.ImageURL, p.ImageURL)
	setString(&e.RegistrationLink, p.RegistrationLink)
}
