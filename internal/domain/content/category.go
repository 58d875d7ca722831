package content

import (
	"strings"

	"acc-portal/internal/domain/site"
	"acc-portal/internal/domain/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`
	Slug string `gorm:"not null;uniqueIndex" json:"slug"`

	Articles []Article `gorm:"foreignKey:CategoryID" json:"articles,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Normalize trims input and derives the slug from the name when missing.
func (c *Category) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Slug = strings.TrimSpace(c.Slug)
	if c.Slug == "" {
		c.Slug = site.MakeSlug(c.Name)
	}
}

func (c Category) Validate() error {
	return validation.First(
		validation.Required("name", c.Name),
		validation.Required("slug", c.Slug),
		site.ValidateSlug("slug", c.Slug),
	)
}
