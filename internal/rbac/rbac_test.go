package rbac

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		want       bool
	}{
		{RoleOwner, PermManageBilling, true},
		{RoleOwner, PermManageCampaigns, true},
		{RoleAdmin, PermManageCampaigns, true},
		{RoleAdmin, PermManageBilling, false},
		{RoleMember, PermRunCampaigns, true},
		{RoleMember, PermManageCampaigns, false},
		{"ghost", PermViewLeads, false},
	}

	for _, tt := range tests {
		if got := HasPermission(tt.role, tt.permission); got != tt.want {
			t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleMember) {
		t.Error("member should be a valid role")
	}
	if ValidRole("superuser") {
		t.Error("superuser should not be a valid role")
	}
}
