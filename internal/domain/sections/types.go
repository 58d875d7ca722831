// Package sections models page-builder sections: typed, ordered blocks on a
// public page whose configuration depends on the section type.
package sections

type Type string

const (
	TypeHero          Type = "hero"
	TypeBanner        Type = "banner"
	TypeStats         Type = "stats"
	TypeFeatures      Type = "features"
	TypeProfiles      Type = "profiles"
	TypeProjects      Type = "projects"
	TypeGrid          Type = "grid"
	TypeList          Type = "list"
	TypeMissionVision Type = "mission-vision"
)

var Types = []Type{
	TypeHero, TypeBanner, TypeStats, TypeFeatures, TypeProfiles,
	TypeProjects, TypeGrid, TypeList, TypeMissionVision,
}

func (t Type) Known() bool {
	for _, v := range Types {
		if t == v {
			return true
		}
	}
	return false
}

type SourceType string

const (
	SourceLatest   SourceType = "latest"
	SourceCategory SourceType = "category"
	SourceManual   SourceType = "manual"
	SourceProfiles SourceType = "profiles"
	SourceProjects SourceType = "projects"
)

func (s SourceType) Valid() bool {
	switch s {
	case SourceLatest, SourceCategory, SourceManual, SourceProfiles, SourceProjects:
		return true
	}
	return false
}

// DefaultSource is the source a section of type t starts with.
func DefaultSource(t Type) SourceType {
	switch t {
	case TypeHero, TypeBanner, TypeStats, TypeFeatures:
		return SourceManual
	case TypeProfiles:
		return SourceProfiles
	case TypeProjects:
		return SourceProjects
	default:
		return SourceLatest
	}
}

// AllowedSources lists the sources a section of type t may draw from.
func AllowedSources(t Type) []SourceType {
	switch t {
	case TypeHero, TypeBanner, TypeStats, TypeFeatures:
		return []SourceType{SourceManual}
	case TypeProfiles:
		return []SourceType{SourceProfiles}
	case TypeProjects:
		return []SourceType{SourceProjects}
	case TypeGrid, TypeList:
		return []SourceType{SourceLatest, SourceCategory, SourceManual, SourceProjects}
	case TypeMissionVision:
		return []SourceType{SourceLatest, SourceManual}
	}
	return nil
}

func sourceAllowed(t Type, s SourceType) bool {
	for _, v := range AllowedSources(t) {
		if v == s {
			return true
		}
	}
	return false
}
