package access

import (
	"testing"

	"acc-portal/internal/domain/users"
)

func TestCan(t *testing.T) {
	cases := []struct {
		role users.Role
		cap  Capability
		want bool
	}{
		{users.RoleAdmin, CapDeleteContent, true},
		{users.RoleAdmin, CapManageUsers, true},
		{users.RoleEditor, CapEditContent, true},
		{users.RoleEditor, CapManageSections, true},
		{users.RoleEditor, CapDeleteContent, false},
		{users.RoleEditor, CapManageProjects, false},
		{users.RoleEditor, CapManageTheme, false},
		{users.RoleViewer, CapView, true},
		{users.RoleViewer, CapEditContent, false},
		{users.Role("root"), CapView, false},
	}
	for _, tc := range cases {
		if got := Can(tc.role, tc.cap); got != tc.want {
			t.Errorf("Can(%s, %s) = %v, want %v", tc.role, tc.cap, got, tc.want)
		}
	}
}

func TestAllowed(t *testing.T) {
	if !Allowed(users.RoleEditor, Editors) {
		t.Fatal("editor should be in Editors")
	}
	if Allowed(users.RoleEditor, AdminOnly) {
		t.Fatal("editor should not be in AdminOnly")
	}
	if Allowed(users.RoleViewer, Editors) {
		t.Fatal("viewer should not be in Editors")
	}
}

func TestComputePolicy(t *testing.T) {
	p := ComputePolicy(users.RoleViewer)
	if p.Role != users.RoleViewer || len(p.Capabilities) != 1 {
		t.Fatalf("policy = %+v", p)
	}
}
