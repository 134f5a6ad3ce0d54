package auth

import (
	"fmt"

	"github.com/lawateaditya/Stock-Management/internal"
)

// Role is the closed set of access levels a user can hold. Every
// authorization decision switches exhaustively over these values so a
// new role cannot be added without revisiting each policy rule.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleInwardUser Role = "inward_user"
	RoleIssuerUser Role = "issuer_user"
)

// ParseRole validates a wire-format role string. Unknown values are
// rejected rather than coerced.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleInwardUser, RoleIssuerUser:
		return Role(s), nil
	}
	return "", internal.NewValidationError(fmt.Sprintf("invalid role: %s", s), internal.ErrCodeInvalidRole)
}

func (r Role) String() string {
	return string(r)
}

// Administrative reports whether the role carries unrestricted read and
// delete access across the ledger and user management.
func (r Role) Administrative() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin:
		return true
	case RoleInwardUser, RoleIssuerUser:
		return false
	}
	return false
}
