package model

// Role is a user's membership role inside a company. RoleNone means the user
// is not a member.
type Role string

const (
	RoleNone   Role = ""
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// ParseRole maps a stored role value to a Role. Unknown values resolve to
// RoleNone so they never grant access.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleMember:
		return Role(s)
	default:
		return RoleNone
	}
}

func (r Role) IsMember() bool {
	return r != RoleNone
}

func (r Role) CanViewCompanyInbox() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

func (r Role) CanMessageAsCompany() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

func (r Role) CanManageTicketStatus() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

func (r Role) CanManageCompany() bool {
	switch r {
	case RoleOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

// ReceivesTicketAlerts reports whether members with this role are emailed
// about new tickets and applicant replies.
func (r Role) ReceivesTicketAlerts() bool {
	return r == RoleOwner
}
