package domain

import "fmt"

// Role identifies one of the four organizational actors in the case pipeline.
// The set is closed: anything outside these four constants fails ParseRole,
// so an unknown role is a construction-time error rather than a runtime fallthrough.
type Role string

const (
	RoleAgentOPS        Role = "AGENT_OPS"
	RoleTreasuryOPS     Role = "TREASURY_OPS"
	RoleTreasuryOfficer Role = "TREASURY_OFFICER"
	RoleTradeDesk       Role = "TRADE_DESK"
)

// AllRoles lists every valid role, in pipeline order.
func AllRoles() []Role {
	return []Role{RoleAgentOPS, RoleTreasuryOPS, RoleTreasuryOfficer, RoleTradeDesk}
}

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAgentOPS, RoleTreasuryOPS, RoleTreasuryOfficer, RoleTradeDesk:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// IsValid reports whether the role is one of the four known roles.
func (r Role) IsValid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Identity is the resolved acting user for a single request: who they are and
// which role their credential carried. It is passed explicitly into every
// service call; nothing reads an ambient token.
type Identity struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
