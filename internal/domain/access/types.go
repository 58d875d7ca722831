package access

import "acc-portal/internal/domain/users"

type Capability string

const (
	CapView           Capability = "view"
	CapEditContent    Capability = "edit_content"
	CapDeleteContent  Capability = "delete_content"
	CapManageSections Capability = "manage_sections"
	CapManageProjects Capability = "manage_projects"
	CapUpload         Capability = "upload"
	CapReadUsers      Capability = "read_users"
	CapManageUsers    Capability = "manage_users"
	CapManageTheme    Capability = "manage_theme"
	CapReadInbox      Capability = "read_inbox"
	CapReadDonations  Capability = "read_donations"
)

// Role groups used by the route guards.
var (
	AdminOnly = []users.Role{users.RoleAdmin}
	Editors   = []users.Role{users.RoleAdmin, users.RoleEditor}
	Anyone    = []users.Role{users.RoleAdmin, users.RoleEditor, users.RoleViewer}
)
