package domain

// Role is the closed set of account roles. Roles are not ordered; what
// each one may do is listed explicitly in the capability table below.
type Role string

const (
	RoleSuperAdmin   Role = "super-admin"
	RoleSubAdmin     Role = "sub-admin"
	RoleSupportAgent Role = "support-agent"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleSubAdmin, RoleSupportAgent:
		return true
	}
	return false
}

// Capability names a permission that a role either has or does not have.
type Capability int

const (
	// CapViewAllLeads lifts the "own leads only" restriction on reads.
	CapViewAllLeads Capability = iota + 1
	// CapAssignLeads allows choosing or changing a lead's assignee.
	CapAssignLeads
	CapUpdateAnyLead
	CapDeleteLead
	CapImportLeads
	CapListUsers
	// CapManageUsers covers admin create, update and delete of accounts.
	CapManageUsers
	CapViewActivity
)

var capabilities = map[Role]map[Capability]bool{
	RoleSuperAdmin: {
		CapViewAllLeads:  true,
		CapAssignLeads:   true,
		CapUpdateAnyLead: true,
		CapDeleteLead:    true,
		CapImportLeads:   true,
		CapListUsers:     true,
		CapManageUsers:   true,
		CapViewActivity:  true,
	},
	RoleSubAdmin: {
		CapViewAllLeads:  true,
		CapAssignLeads:   true,
		CapUpdateAnyLead: true,
		CapDeleteLead:    true,
		CapImportLeads:   true,
		CapListUsers:     true,
	},
	RoleSupportAgent: {},
}

// Can reports whether the role holds the capability. Unknown roles hold nothing.
func (r Role) Can(c Capability) bool {
	return capabilities[r][c]
}

// IsAdmin reports whether the role sees every lead.
func (r Role) IsAdmin() bool {
	return r.Can(CapViewAllLeads)
}
