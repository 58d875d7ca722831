package content

import (
	"strings"
	"time"

	"acc-portal/internal/domain/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectOngoing   ProjectStatus = "Ongoing"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectUpcoming  ProjectStatus = "Upcoming"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectOngoing, ProjectCompleted, ProjectUpcoming:
		return true
	}
	return false
}

type Project struct {
	ID          string        `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Status      ProjectStatus `gorm:"type:project_status;not null;default:Ongoing" json:"status"`
	ImageURL    string        `json:"imageUrl"`
	// Link is optional; projects without one are shown as restricted.
	Link string `json:"link,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Project) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	if p.Status == "" {
		p.Status = ProjectOngoing
	}
}

func (p Project) Validate() error {
	err := validation.First(
		validation.Required("title", p.Title),
		validation.Required("description", p.Description),
	)
	if err != nil {
		return err
	}
	if !p.Status.Valid() {
		return validation.Newf("status", "must be one of Ongoing, Completed, Upcoming (got %q)", p.Status)
	}
	return nil
}

type ProjectPatch struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *ProjectStatus `json:"status"`
	ImageURL    *string        `json:"imageUrl"`
	Link        *string        `json:"link"`
}

func (p ProjectPatch) Apply(pr *Project) {
	setString(&pr.Title, p.Title)
	setString(&pr.Description, p.Description)
	if p.Status != nil {
		pr.Status = *p.Status
	}
	setString(&pr.ImageURL, p.ImageURL)
	setString(&pr.Link, p.Link)
}
