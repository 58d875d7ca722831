package sections

import (
	"encoding/json"
	"strings"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/domain/site"
	"acc-portal/internal/domain/validation"
)

type Section struct {
	ID         string
	Title      string
	Subtitle   string
	Content    string
	Type       Type
	Page       site.Page
	Order      int
	SourceType SourceType
	Config     Config
}

type sectionJSON struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Subtitle     string          `json:"subtitle,omitempty"`
	Content      string          `json:"content,omitempty"`
	Type         Type            `json:"type"`
	Page         site.Page       `json:"page"`
	Order        int             `json:"order"`
	SourceType   SourceType      `json:"sourceType"`
	SourceConfig json.RawMessage `json:"sourceConfig"`
}

func (s Section) MarshalJSON() ([]byte, error) {
	cfg, err := EncodeConfig(s.Config)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sectionJSON{
		ID:           s.ID,
		Title:        s.Title,
		Subtitle:     s.Subtitle,
		Content:      s.Content,
		Type:         s.Type,
		Page:         s.Page,
		Order:        s.Order,
		SourceType:   s.SourceType,
		SourceConfig: cfg,
	})
}

// UnmarshalJSON decodes leniently: stored sections may predate the current
// field set, so malformed configuration degrades to the empty variant.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string          `json:"id"`
		Title        string          `json:"title"`
		Subtitle     string          `json:"subtitle"`
		Content      string          `json:"content"`
		Type         Type            `json:"type"`
		Page         site.Page       `json:"page"`
		Order        json.RawMessage `json:"order"`
		SourceType   SourceType      `json:"sourceType"`
		SourceConfig json.RawMessage `json:"sourceConfig"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	cfg, _ := DecodeConfig(raw.Type, raw.SourceConfig, false)
	*s = Section{
		ID:         raw.ID,
		Title:      raw.Title,
		Subtitle:   raw.Subtitle,
		Content:    raw.Content,
		Type:       raw.Type,
		Page:       raw.Page,
		Order:      lenientInt(raw.Order),
		SourceType: raw.SourceType,
		Config:     cfg,
	}
	if s.SourceType == "" {
		s.SourceType = DefaultSource(s.Type)
	}
	return nil
}

func lenientInt(raw json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	var s json.Number
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := s.Float64(); err == nil {
			return int(f)
		}
	}
	return 0
}

// FromResource decodes a SECTION resource. The row's id and title win over
// whatever the stored metadata says.
func FromResource(r content.Resource) Section {
	var s Section
	if len(r.Metadata) == 0 || json.Unmarshal(r.Metadata, &s) != nil {
		s = Section{Config: &UnknownConfig{}}
	}
	s.ID = r.ID
	s.Title = r.Title
	if s.Config == nil {
		s.Config = EmptyConfig(s.Type)
	}
	return s
}

// Metadata is the JSON stored on the backing resource.
func (s Section) Metadata() ([]byte, error) {
	return json.Marshal(s)
}

// Validate checks a section built from API input.
func (s Section) Validate() error {
	if err := validation.Required("title", s.Title); err != nil {
		return err
	}
	if !s.Type.Known() {
		return validation.Newf("type", "unknown section type %q", s.Type)
	}
	if !s.Page.Valid() {
		return validation.Newf("page", "unknown page %q", s.Page)
	}
	if s.Order < 0 {
		return validation.New("order", "must not be negative")
	}
	if !s.SourceType.Valid() {
		return validation.Newf("sourceType", "unknown source type %q", s.SourceType)
	}
	if !sourceAllowed(s.Type, s.SourceType) {
		return validation.Newf("sourceType", "%s sections cannot use source %q", s.Type, s.SourceType)
	}
	if s.Config == nil || !configMatches(s.Type, s.Config) {
		return validation.New("sourceConfig", "does not match the section type")
	}
	return validateConfig(s.SourceType, s.Config)
}

func validateConfig(source SourceType, cfg Config) error {
	switch c := cfg.(type) {
	case *ItemsConfig:
		for i, it := range c.Items {
			if strings.TrimSpace(it.DisplayLabel()) == "" {
				return validation.Newf("sourceConfig.items", "item %d needs a label", i)
			}
		}
	case *ProfilesConfig:
		if c.Limit < 0 {
			return validation.New("sourceConfig.limit", "must not be negative")
		}
		if c.ProfileType != "" && !c.ProfileType.Valid() {
			return validation.Newf("sourceConfig.profileType", "unknown profile type %q", c.ProfileType)
		}
	case *ProjectsConfig:
		if c.Limit < 0 {
			return validation.New("sourceConfig.limit", "must not be negative")
		}
	case *CollectionConfig:
		if c.Limit < 0 {
			return validation.New("sourceConfig.limit", "must not be negative")
		}
		if source == SourceCategory && strings.TrimSpace(c.CategoryID) == "" {
			return validation.New("sourceConfig.categoryId", "is required for category sources")
		}
		if source == SourceManual && len(c.ArticleIDs) == 0 {
			return validation.New("sourceConfig.articleIds", "is required for manual sources")
		}
	}
	return nil
}

// Input is a create request.
type Input struct {
	Title        string          `json:"title"`
	Subtitle     string          `json:"subtitle"`
	Content      string          `json:"content"`
	Type         Type            `json:"type"`
	Page         site.Page       `json:"page"`
	Order        int             `json:"order"`
	SourceType   SourceType      `json:"sourceType"`
	SourceConfig json.RawMessage `json:"sourceConfig"`
}

// Build turns the input into a validated section. Order 0 is left for the
// caller to assign.
func (in Input) Build() (Section, error) {
	s := Section{
		Title:      strings.TrimSpace(in.Title),
		Subtitle:   in.Subtitle,
		Content:    in.Content,
		Type:       in.Type,
		Page:       in.Page,
		Order:      in.Order,
		SourceType: in.SourceType,
	}
	if s.Order < 0 {
		s.Order = 0
	}
	if !s.Type.Known() {
		return Section{}, validation.Newf("type", "unknown section type %q", s.Type)
	}
	if s.SourceType == "" {
		s.SourceType = DefaultSource(s.Type)
	}
	cfg, err := DecodeConfig(s.Type, in.SourceConfig, true)
	if err != nil {
		return Section{}, err
	}
	s.Config = cfg
	if err := s.Validate(); err != nil {
		return Section{}, err
	}
	return s, nil
}

// Patch is a partial update. A nil SourceConfig leaves the configuration
// alone unless the type changes.
type Patch struct {
	Title        *string         `json:"title"`
	Subtitle     *string         `json:"subtitle"`
	Content      *string         `json:"content"`
	Type         *Type           `json:"type"`
	Page         *site.Page      `json:"page"`
	Order        *int            `json:"order"`
	SourceType   *SourceType     `json:"sourceType"`
	SourceConfig json.RawMessage `json:"sourceConfig"`
}

// Apply updates s in place and validates the result. A type change resets
// the source to the new type's default and the config to its empty variant
// before any explicitly supplied source fields are applied.
func (p Patch) Apply(s *Section) error {
	next := *s
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Subtitle != nil {
		next.Subtitle = *p.Subtitle
	}
	if p.Content != nil {
		next.Content = *p.Content
	}
	if p.Page != nil {
		next.Page = *p.Page
	}
	if p.Order != nil {
		if *p.Order < 1 {
			return validation.New("order", "must be at least 1")
		}
		next.Order = *p.Order
	}
	if p.Type != nil && *p.Type != next.Type {
		if !p.Type.Known() {
			return validation.Newf("type", "unknown section type %q", *p.Type)
		}
		next.Type = *p.Type
		next.SourceType = DefaultSource(next.Type)
		next.Config = EmptyConfig(next.Type)
	}
	if p.SourceType != nil {
		next.SourceType = *p.SourceType
	}
	if p.SourceConfig != nil {
		cfg, err := DecodeConfig(next.Type, p.SourceConfig, true)
		if err != nil {
			return err
		}
		next.Config = cfg
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}
