package rbac

const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

const (
	PermManageCampaigns  = "manage_campaigns"
	PermRunCampaigns     = "run_campaigns"
	PermViewLeads        = "view_leads"
	PermUpdateLeadStatus = "update_lead_status"
	PermManageBilling    = "manage_billing"
)

var rolePermissions = map[string][]string{
	RoleOwner: {
		PermManageCampaigns,
		PermRunCampaigns,
		PermViewLeads,
		PermUpdateLeadStatus,
		PermManageBilling,
	},
	RoleAdmin: {
		PermManageCampaigns,
		PermRunCampaigns,
		PermViewLeads,
		PermUpdateLeadStatus,
	},
	RoleMember: {
		PermRunCampaigns,
		PermViewLeads,
		PermUpdateLeadStatus,
	},
}

func HasPermission(role, permission string) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

func ValidRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}
