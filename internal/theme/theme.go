// Package theme holds the site-wide visual settings and their YAML file
// store.
package theme

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"acc-portal/internal/domain/validation"
)

type Config struct {
	PrimaryColor   string `yaml:"primaryColor" json:"primaryColor"`
	SecondaryColor string `yaml:"secondaryColor" json:"secondaryColor"`
	FontFamily     string `yaml:"fontFamily" json:"fontFamily"`
	BorderRadius   string `yaml:"borderRadius" json:"borderRadius"`
}

func Default() Config {
	return Config{
		PrimaryColor:   "#0084d1",
		SecondaryColor: "#001f3f",
		FontFamily:     `"Bricolage Grotesque", sans-serif`,
		BorderRadius:   "1rem",
	}
}

var (
	hexColor  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	cssLength = regexp.MustCompile(`^(?:0|\d+(?:\.\d+)?(?:px|rem|em|%))$`)
	fontList  = regexp.MustCompile(`^[A-Za-z0-9 ,"'\-]+$`)
)

func (c Config) Validate() error {
	if !hexColor.MatchString(c.PrimaryColor) {
		return validation.Newf("primaryColor", "must be a hex colour (got %q)", c.PrimaryColor)
	}
	if !hexColor.MatchString(c.SecondaryColor) {
		return validation.Newf("secondaryColor", "must be a hex colour (got %q)", c.SecondaryColor)
	}
	if strings.TrimSpace(c.FontFamily) == "" || len(c.FontFamily) > 200 || !fontList.MatchString(c.FontFamily) {
		return validation.New("fontFamily", "must be a comma separated list of font names")
	}
	if !cssLength.MatchString(c.BorderRadius) {
		return validation.Newf("borderRadius", "must be a CSS length such as 1rem or 8px (got %q)", c.BorderRadius)
	}
	return nil
}

// CSSVariables renders the theme as custom properties for a :root rule.
// Only call it on a validated config.
func (c Config) CSSVariables() template.CSS {
	return template.CSS(fmt.Sprintf(
		"--primary-color: %s; --secondary-color: %s; --font-family: %s; --border-radius: %s;",
		c.PrimaryColor, c.SecondaryColor, c.FontFamily, c.BorderRadius,
	))
}

// Patch is a partial theme update.
type Patch struct {
	PrimaryColor   *string `json:"primaryColor"`
	SecondaryColor *string `json:"secondaryColor"`
	FontFamily     *string `json:"fontFamily"`
	BorderRadius   *string `json:"borderRadius"`
}

func (c Config) Merge(p Patch) Config {
	if p.PrimaryColor != nil {
		c.PrimaryColor = strings.TrimSpace(*p.PrimaryColor)
	}
	if p.SecondaryColor != nil {
		c.SecondaryColor = strings.TrimSpace(*p.SecondaryColor)
	}
	if p.FontFamily != nil {
		c.FontFamily = strings.TrimSpace(*p.FontFamily)
	}
	if p.BorderRadius != nil {
		c.BorderRadius = strings.TrimSpace(*p.BorderRadius)
	}
	return c
}

// fillDefaults replaces empty fields with defaults, for hand-edited files
// that only set some keys.
func (c Config) fillDefaults() Config {
	d := Default()
	if c.PrimaryColor == "" {
		c.PrimaryColor = d.PrimaryColor
	}
	if c.SecondaryColor == "" {
		c.SecondaryColor = d.SecondaryColor
	}
	if c.FontFamily == "" {
		c.FontFamily = d.FontFamily
	}
	if c.BorderRadius == "" {
		c.BorderRadius = d.BorderRadius
	}
	return c
}
