package content

import (
	"strings"
	"time"

	"acc-portal/internal/domain/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileType string

const (
	ProfileStaff     ProfileType = "Staff"
	ProfileBoard     ProfileType = "Board"
	ProfileVolunteer ProfileType = "Volunteer"
	ProfileIntern    ProfileType = "Intern"
)

var ProfileTypes = []ProfileType{ProfileStaff, ProfileBoard, ProfileVolunteer, ProfileIntern}

func (t ProfileType) Valid() bool {
	for _, v := range ProfileTypes {
		if t == v {
			return true
		}
	}
	return false
}

type Profile struct {
	ID       string      `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string      `gorm:"not null" json:"name"`
	Role     string      `gorm:"not null" json:"role"`
	Bio      string      `gorm:"type:text;not null" json:"bio"`
	ImageURL string      `json:"imageUrl"`
	Type     ProfileType `gorm:"type:profile_type;not null;default:Staff" json:"type"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Profile) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	if p.Type == "" {
		p.Type = ProfileStaff
	}
}

func (p Profile) Validate() error {
	err := validation.First(
		validation.Required("name", p.Name),
		validation.Required("role", p.Role),
		validation.Required("bio", p.Bio),
	)
	if err != nil {
		return err
	}
	if !p.Type.Valid() {
		return validation.Newf("type", "must be one of Staff, Board, Volunteer, Intern (got %q)", p.Type)
	}
	return nil
}

type ProfilePatch struct {
	Name     *string      `json:"name"`
	Role     *string      `json:"role"`
	Bio      *string      `json:"bio"`
	ImageURL *string      `json:"imageUrl"`
	Type     *ProfileType `json:"type"`
}

func (p ProfilePatch) Apply(pr *Profile) {
	setString(&pr.Name, p.Name)
	setString(&pr.Role, p.Role)
	setString(&pr.Bio, p.Bio)
	setString(&pr.ImageURL, p.ImageURL)
	if p.Type != nil {
		pr.Type = *p.Type
	}
}
