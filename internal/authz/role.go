package authz

import (
	"fmt"

	"election-bknd/internal/geo"
)

// SuperadminRole is the persisted sentinel for the global admin role.
const SuperadminRole = "superadmin"

// Role is a closed representation of what a user may administer: the global
// superadmin, an admin bound to one district or upazila, or nothing at all.
// The zero value means no role has been assigned and denies every mutation.
type Role struct {
	super bool
	scope string
}

// Superadmin returns the global admin role.
func Superadmin() Role {
	return Role{super: true}
}

// ScopeAdmin returns a role bound to a single district or upazila identifier.
func ScopeAdmin(scopeID string) Role {
	return Role{scope: scopeID}
}

// ParseRole maps a persisted role string to its tagged form. Scope
// identifiers outside the division catalog are rejected, so a typo in the
// role store can never silently grant or withhold access.
func ParseRole(s string) (Role, error) {
	switch {
	case s == SuperadminRole:
		return Superadmin(), nil
	case geo.IsScope(s):
		return ScopeAdmin(s), nil
	default:
		return Role{}, fmt.Errorf("unknown role %q", s)
	}
}

// IsSuperadmin reports whether the role is the global admin.
func (r Role) IsSuperadmin() bool {
	return r.super
}

// IsZero reports whether no role has been assigned.
func (r Role) IsZero() bool {
	return !r.super && r.scope == ""
}

// String returns the persisted form of the role. The zero value renders as
// the empty string.
func (r Role) String() string {
	if r.super {
		return SuperadminRole
	}
	return r.scope
}

// Allows decides whether the role may mutate records in the given scope.
// Superadmin passes everywhere; a scoped admin passes only on exact match;
// an unassigned role never passes.
func (r Role) Allows(scopeID string) bool {
	if r.super {
		return true
	}
	return r.scope != "" && r.scope == scopeID
}

// Identity is the resolved caller passed explicitly to every service
// operation. Handlers build it from the verified session; tests build it
// directly.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}
