package auth

import (
	"encoding/json"
	"net/http"

	"github.com/lawateaditya/Stock-Management/internal"
)

// Policy is the single decision point for role-based access. Handlers
// gate route groups through the Require* middlewares; services call the
// capability checks directly where the rule depends on the target (entry
// ownership, admin-role management).
//
// Capability matrix:
//
//	                 super_admin  admin  inward_user  issuer_user
//	manage users          x         x
//	delete users          x
//	write catalog         x         x
//	read catalog          x         x        x            x
//	inward module         x         x        x
//	issue module          x         x                     x
//	stock reports         x         x
//
// Non-admin access to the ledger is scoped to rows the user created.
type Policy struct{}

func NewPolicy() Policy {
	return Policy{}
}

func (Policy) CanManageUsers(role Role) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin:
		return true
	case RoleInwardUser, RoleIssuerUser:
		return false
	}
	return false
}

// CanDeleteUsers is stricter than CanManageUsers: only the super admin
// may remove accounts.
func (Policy) CanDeleteUsers(role Role) bool {
	switch role {
	case RoleSuperAdmin:
		return true
	case RoleAdmin, RoleInwardUser, RoleIssuerUser:
		return false
	}
	return false
}

func (Policy) CanWriteCatalog(role Role) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin:
		return true
	case RoleInwardUser, RoleIssuerUser:
		return false
	}
	return false
}

func (Policy) CanAccessInward(role Role) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleInwardUser:
		return true
	case RoleIssuerUser:
		return false
	}
	return false
}

func (Policy) CanAccessIssue(role Role) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleIssuerUser:
		return true
	case RoleInwardUser:
		return false
	}
	return false
}

func (Policy) CanViewStock(role Role) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin:
		return true
	case RoleInwardUser, RoleIssuerUser:
		return false
	}
	return false
}

// SeesAllEntries reports whether ledger reads return every row or only
// rows the user created.
func (Policy) SeesAllEntries(role Role) bool {
	return role.Administrative()
}

// CanDeleteEntry enforces ownership on ledger deletes: admins delete any
// entry, everyone else only their own.
func (Policy) CanDeleteEntry(actor *User, entryCreator string) error {
	if actor.Role.Administrative() {
		return nil
	}
	if actor.UserID == entryCreator {
		return nil
	}
	return internal.ErrNotEntryOwner
}

// RequireUserManagement gates the user administration routes.
func (p Policy) RequireUserManagement() func(http.Handler) http.Handler {
	return p.require(p.CanManageUsers)
}

// RequireCatalogWrite gates item and supplier mutations.
func (p Policy) RequireCatalogWrite() func(http.Handler) http.Handler {
	return p.require(p.CanWriteCatalog)
}

// RequireInwardAccess gates the inward ledger routes.
func (p Policy) RequireInwardAccess() func(http.Handler) http.Handler {
	return p.require(p.CanAccessInward)
}

// RequireIssueAccess gates the issue ledger routes.
func (p Policy) RequireIssueAccess() func(http.Handler) http.Handler {
	return p.require(p.CanAccessIssue)
}

// RequireStockAccess gates the stock reporting routes.
func (p Policy) RequireStockAccess() func(http.Handler) http.Handler {
	return p.require(p.CanViewStock)
}

func (Policy) require(allowed func(Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeAppError(w, internal.ErrMissingCredentials)
				return
			}
			if !allowed(user.Role) {
				writeAppError(w, internal.ErrRoleDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAppError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
