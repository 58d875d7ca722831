package content

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"acc-portal/internal/domain/site"
	"acc-portal/internal/domain/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ResourceType string

const (
	ResourceArticle ResourceType = "ARTICLE"
	ResourceEvent   ResourceType = "EVENT"
	ResourceProfile ResourceType = "PROFILE"
	ResourceProject ResourceType = "PROJECT"
	ResourceSection ResourceType = "SECTION"
	ResourcePage    ResourceType = "PAGE"
	ResourceOther   ResourceType = "OTHER"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceArticle, ResourceEvent, ResourceProfile, ResourceProject,
		ResourceSection, ResourcePage, ResourceOther:
		return true
	}
	return false
}

// Resource is a generic typed record with free-form JSON metadata. Rows of
// type SECTION hold page-builder section configuration.
type Resource struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Slug        string         `gorm:"not null;uniqueIndex" json:"slug"`
	Content     string         `gorm:"type:text" json:"content"`
	Type        ResourceType   `gorm:"type:resource_type;not null;default:OTHER;index" json:"type"`
	ImageURL    string         `json:"imageUrl"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	IsPublished bool           `gorm:"not null;default:false" json:"isPublished"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *Resource) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Slug = strings.TrimSpace(r.Slug)
	if r.Slug == "" {
		r.Slug = site.MakeSlug(r.Title)
	}
	if r.Type == "" {
		r.Type = ResourceOther
	}
}

func (r Resource) Validate() error {
	err := validation.First(
		validation.Required("title", r.Title),
		validation.Required("slug", r.Slug),
		validation.Required("type", string(r.Type)),
	)
	if err != nil {
		return err
	}
	if !r.Type.Valid() {
		return validation.Newf("type", "unknown resource type %q", r.Type)
	}
	if len(r.Metadata) > 0 && !json.Valid(r.Metadata) {
		return validation.New("metadata", "must be valid JSON")
	}
	return nil
}

type ResourcePatch struct {
	Title       *string         `json:"title"`
	Slug        *string         `json:"slug"`
	Content     *string         `json:"content"`
	Type        *ResourceType   `json:"type"`
	ImageURL    *string         `json:"imageUrl"`
	Metadata    *datatypes.JSON `json:"metadata"`
	IsPublished *bool           `json:"isPublished"`
}

func (p ResourcePatch) Apply(r *Resource) {
	setString(&r.Title, p.Title)
	setString(&r.Slug, p.Slug)
	setString(&r.Content, p.Content)
	if p.Type != nil {
		r.Type = *p.Type
	}
	setString(&r.ImageURL, p.ImageURL)
	if p.Metadata != nil {
		r.Metadata = *p.Metadata
	}
	setBool(&r.IsPublished, p.IsPublished)
}

// ResourceQuery filters and pages a resource listing.
type ResourceQuery struct {
	Page   int
	Limit  int
	Search string
	Type   ResourceType
}

const (
	DefaultResourceLimit = 10
	MaxResourceLimit     = 100
	// MaxResourcePage keeps the offset within an int32.
	MaxResourcePage = math.MaxInt32 / MaxResourceLimit
)

// Normalize clamps paging to 1 <= page <= MaxResourcePage and
// 1 <= limit <= MaxResourceLimit.
func (q *ResourceQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxResourcePage {
		q.Page = MaxResourcePage
	}
	if q.Limit < 1 {
		q.Limit = DefaultResourceLimit
	}
	if q.Limit > MaxResourceLimit {
		q.Limit = MaxResourceLimit
	}
	q.Search = strings.TrimSpace(q.Search)
}

func (q ResourceQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPageMeta(total int64, q ResourceQuery) PageMeta {
	pages := 0
	if q.Limit > 0 {
		pages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	return PageMeta{Total: total, Page: q.Page, Limit: q.Limit, TotalPages: pages}
}
