package content

import (
	"strings"
	"time"

	"acc-portal/internal/domain/site"
	"acc-portal/internal/domain/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArticleFormat string

const (
	FormatHTML     ArticleFormat = "html"
	FormatMarkdown ArticleFormat = "markdown"
)

func (f ArticleFormat) Valid() bool {
	return f == FormatHTML || f == FormatMarkdown
}

type Article struct {
	ID          string        `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string        `gorm:"not null" json:"title"`
	Slug        string        `gorm:"not null;uniqueIndex" json:"slug"`
	Content     string        `gorm:"type:text;not null" json:"content"`
	Format      ArticleFormat `gorm:"not null;default:html" json:"format"`
	Excerpt     string        `json:"excerpt"`
	ImageURL    string        `json:"imageUrl"`
	Date        string        `json:"date"`
	Featured    bool          `gorm:"not null;default:false" json:"featured"`
	IsPublished bool          `gorm:"not null;default:false" json:"isPublished"`

	CategoryID *string   `gorm:"type:uuid;index" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *Article) Normalize() {
	a.Title = strings.TrimSpace(a.Title)
	a.Slug = strings.TrimSpace(a.Slug)
	if a.Slug == "" {
		a.Slug = site.MakeSlug(a.Title)
	}
	if a.Format == "" {
		a.Format = FormatHTML
	}
	if a.CategoryID != nil && strings.TrimSpace(*a.CategoryID) == "" {
		a.CategoryID = nil
	}
}

func (a Article) Validate() error {
	err := validation.First(
		validation.Required("title", a.Title),
		validation.Required("slug", a.Slug),
		site.ValidateSlug("slug", a.Slug),
		validation.Required("content", a.Content),
	)
	if err != nil {
		return err
	}
	if !a.Format.Valid() {
		return validation.Newf("format", "must be one of html, markdown (got %q)", a.Format)
	}
	if a.CategoryID != nil {
		if _, err := uuid.Parse(*a.CategoryID); err != nil {
			return validation.New("categoryId", "must be a uuid")
		}
	}
	return nil
}

// ArticlePatch holds the fields a PATCH may change. A categoryId of ""
// detaches the article from its category.
type ArticlePatch struct {
	Title       *string        `json:"title"`
	Slug        *string        `json:"slug"`
	Content     *string        `json:"content"`
	Format      *ArticleFormat `json:"format"`
	Excerpt     *string        `json:"excerpt"`
	ImageURL    *string        `json:"imageUrl"`
	Date        *string        `json:"date"`
	Featured    *bool          `json:"featured"`
	IsPublished *bool          `json:"isPublished"`
	CategoryID  *string        `json:"categoryId"`
}

func (p ArticlePatch) Apply(a *Article) {
	setString(&a.Title, p.Title)
	setString(&a.Slug, p.Slug)
	setString(&a.Content, p.Content)
	if p.Format != nil {
		a.Format = *p.Format
	}
	setString(&a.Excerpt, p.Excerpt)
	setString(&a.ImageURL, p.ImageURL)
	setString(&a.Date, p.Date)
	setBool(&a.Featured, p.Featured)
	setBool(&a.IsPublished, p.IsPublished)
	if p.CategoryID != nil {
		if *p.CategoryID == "" {
			a.CategoryID = nil
		} else {
			id := *p.CategoryID
			a.CategoryID = &id
		}
		a.Category = nil
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
