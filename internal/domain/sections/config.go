package sections

import (
	"bytes"
	"encoding/json"
	"fmt"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/domain/validation"
)

// Config is the type-specific part of a section. The concrete type always
// matches the section's Type:
//
//	hero, banner       -> *HeroConfig
//	stats, features    -> *ItemsConfig
//	profiles           -> *ProfilesConfig
//	projects           -> *ProjectsConfig
//	grid, list         -> *CollectionConfig
//	mission-vision     -> *MissionVisionConfig
//	anything else      -> *UnknownConfig
type Config interface {
	isConfig()
}

type HeroConfig struct {
	HeroTitle    string `json:"heroTitle,omitempty"`
	HeroSubtitle string `json:"heroSubtitle,omitempty"`
	HeroCtaText  string `json:"heroCtaText,omitempty"`
	HeroCtaLink  string `json:"heroCtaLink,omitempty"`
	HeroImage    string `json:"heroImage,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

type Item struct {
	Label       string `json:"label,omitempty"`
	Title       string `json:"title,omitempty"`
	Value       string `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Link        string `json:"link,omitempty"`
}

// DisplayLabel prefers Label and falls back to Title.
func (i Item) DisplayLabel() string {
	if i.Label != "" {
		return i.Label
	}
	return i.Title
}

type ItemsConfig struct {
	Items []Item `json:"items"`
}

type ProfilesConfig struct {
	ProfileType content.ProfileType `json:"profileType,omitempty"`
	Limit       int                 `json:"limit,omitempty"`
}

type ProjectsConfig struct {
	Limit int `json:"limit,omitempty"`
}

type CollectionConfig struct {
	Limit      int      `json:"limit,omitempty"`
	CategoryID string   `json:"categoryId,omitempty"`
	ArticleIDs []string `json:"articleIds,omitempty"`
}

type MissionVisionConfig struct{}

// UnknownConfig keeps the raw configuration of section types this build
// does not know, so they survive a round trip.
type UnknownConfig struct {
	Raw json.RawMessage
}

func (*HeroConfig) isConfig()          {}
func (*ItemsConfig) isConfig()         {}
func (*ProfilesConfig) isConfig()      {}
func (*ProjectsConfig) isConfig()      {}
func (*CollectionConfig) isConfig()    {}
func (*MissionVisionConfig) isConfig() {}
func (*UnknownConfig) isConfig()       {}

func (u *UnknownConfig) MarshalJSON() ([]byte, error) {
	if len(u.Raw) == 0 {
		return []byte("{}"), nil
	}
	return u.Raw, nil
}

// EmptyConfig returns the zero configuration for t.
func EmptyConfig(t Type) Config {
	switch t {
	case TypeHero, TypeBanner:
		return &HeroConfig{}
	case TypeStats, TypeFeatures:
		return &ItemsConfig{Items: []Item{}}
	case TypeProfiles:
		return &ProfilesConfig{}
	case TypeProjects:
		return &ProjectsConfig{}
	case TypeGrid, TypeList:
		return &CollectionConfig{}
	case TypeMissionVision:
		return &MissionVisionConfig{}
	default:
		return &UnknownConfig{}
	}
}

// DecodeConfig parses raw into the variant for t. Strict decoding rejects
// unknown fields and malformed values; lenient decoding falls back to the
// empty variant instead of failing.
func DecodeConfig(t Type, raw json.RawMessage, strict bool) (Config, error) {
	cfg := EmptyConfig(t)
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return cfg, nil
	}

	if u, ok := cfg.(*UnknownConfig); ok {
		if strict {
			return nil, validation.Newf("type", "unknown section type %q", t)
		}
		u.Raw = append(json.RawMessage(nil), trimmed...)
		return u, nil
	}

	if !strict {
		if err := json.Unmarshal(trimmed, cfg); err != nil {
			return EmptyConfig(t), nil
		}
		return normalizeConfig(cfg), nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, validation.Newf("sourceConfig", "invalid for %s section: %v", t, err)
	}
	if dec.More() {
		return nil, validation.New("sourceConfig", "unexpected trailing data")
	}
	return normalizeConfig(cfg), nil
}

// EncodeConfig serialises a config variant, using "{}" for nil.
func EncodeConfig(cfg Config) (json.RawMessage, error) {
	if cfg == nil {
		return json.RawMessage("{}"), nil
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode section config: %w", err)
	}
	return b, nil
}

func normalizeConfig(cfg Config) Config {
	if c, ok := cfg.(*ItemsConfig); ok && c.Items == nil {
		c.Items = []Item{}
	}
	return cfg
}

// configMatches reports whether cfg is the variant for t.
func configMatches(t Type, cfg Config) bool {
	switch cfg.(type) {
	case *HeroConfig:
		return t == TypeHero || t == TypeBanner
	case *ItemsConfig:
		return t == TypeStats || t == TypeFeatures
	case *ProfilesConfig:
		return t == TypeProfiles
	case *ProjectsConfig:
		return t == TypeProjects
	case *CollectionConfig:
		return t == TypeGrid || t == TypeList
	case *MissionVisionConfig:
		return t == TypeMissionVision
	case *UnknownConfig:
		return !t.Known()
	}
	return false
}
