package media

import (
	"strings"
	"time"

	"acc-portal/internal/domain/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Upload records one stored image. Key is the object name in the
// configured backend and URL is where the site serves it.
type Upload struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Key         string  `gorm:"not null;uniqueIndex" json:"key"`
	URL         string  `gorm:"column:url;not null" json:"url"`
	Filename    string  `json:"filename"`
	ContentType string  `gorm:"not null" json:"contentType"`
	Size        int64   `gorm:"not null" json:"size"`
	Backend     string  `gorm:"not null" json:"backend"`
	UploadedBy  *string `gorm:"type:uuid" json:"uploadedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (u *Upload) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// imageExts lists the accepted upload types. SVG is left out: it is a
// document that can carry script.
var imageExts = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/avif": ".avif",
}

// IsImage reports whether contentType is one of the accepted image types.
func IsImage(contentType string) bool {
	_, ok := imageExts[strings.ToLower(contentType)]
	return ok
}

// NewKey mints a fresh object key. The extension always comes from the
// content type, never from the client's filename, since backends serve
// objects with the type the extension implies.
func NewKey(contentType string) string {
	return uuid.NewString() + imageExts[strings.ToLower(contentType)]
}

// ValidateKey rejects anything that is not a single safe path segment.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return validation.New("key", "invalid upload key")
	}
	return nil
}

func PublicURL(key string) string {
	return "/uploads/" + key
}
