package access

import "acc-portal/internal/domain/users"

func CapabilitiesFor(role users.Role) []Capability {
	switch role {
	case users.RoleAdmin:
		return []Capability{
			CapView, CapEditContent, CapDeleteContent, CapManageSections,
			CapManageProjects, CapUpload, CapReadUsers, CapManageUsers,
			CapManageTheme, CapReadInbox, CapReadDonations,
		}
	case users.RoleEditor:
		return []Capability{
			CapView, CapEditContent, CapManageSections, CapUpload,
			CapReadUsers, CapReadInbox,
		}
	case users.RoleViewer:
		return []Capability{CapView}
	default:
		return []Capability{}
	}
}

// Can reports whether role holds capability.
func Can(role users.Role, capability Capability) bool {
	for _, c := range CapabilitiesFor(role) {
		if c == capability {
			return true
		}
	}
	return false
}

// Allowed reports whether role is one of roles.
func Allowed(role users.Role, roles []users.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
