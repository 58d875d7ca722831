package site

import (
	"regexp"
	"strings"
	"unicode"

	"acc-portal/internal/domain/validation"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

/*
	Slug helpers
	------------
	- slugs are lower-case ascii words joined by single dashes
	- accents are folded ("Sécurité" -> "securite")
*/

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
	validSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// MakeSlug generates a URL-safe slug from free text.
// Example: "Cyber Threats in 2025!" -> "cyber-threats-in-2025"
func MakeSlug(text string) string {
	base := strings.ToLower(strings.TrimSpace(foldAccents(text)))
	base = strings.Join(strings.Fields(base), "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "untitled"
	}
	return base
}

func ValidateSlug(field, slug string) error {
	if slug == "" || validSlug.MatchString(slug) {
		return nil
	}
	return validation.New(field, "must contain only lower-case letters, digits and single dashes")
}

// SectionSlug returns a fresh unique slug for a section resource.
func SectionSlug() string {
	return "section-" + uuid.NewString()
}

func foldAccents(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
