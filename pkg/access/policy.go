// Package access maps an authenticated identity to what it may see and
// do. It renders role distinctions for the UI and router; it is not a
// security boundary. The API re-checks role on every privileged
// request regardless of what this package decided.
package access

// Roles known to the system. Anything else is treated as a plain user.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Identity is the currently authenticated user as issued by signin.
// The zero value is not a valid identity; absence is expressed as a
// nil *Identity.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Capabilities is the set of named permissions a role grants. Exactly
// two tiers exist: plain users get none, admins and super admins get
// all three.
type Capabilities struct {
	CanViewAdminSurface bool
	CanManageUsers      bool
	CanManageOptions    bool
}

func CapabilitiesFor(role string) Capabilities {
	switch role {
	case RoleAdmin, RoleSuperAdmin:
		return Capabilities{
			CanViewAdminSurface: true,
			CanManageUsers:      true,
			CanManageOptions:    true,
		}
	default:
		return Capabilities{}
	}
}

// Routes the guard knows about.
const (
	RouteLogin          = "/login"
	RouteRegister       = "/register"
	RouteForgotPassword = "/forgot-password"
	RouteAddEntry       = "/add-entry"
	RouteEntries        = "/entries"
	RouteAdmin          = "/admin"
)

// LandingRouteFor is the default destination for an identity with no
// explicit navigation target. Total over every role value: unknown
// roles land on the entry-logging surface, a missing identity lands on
// login.
func LandingRouteFor(id *Identity) string {
	if id == nil {
		return RouteLogin
	}
	if CapabilitiesFor(id.Role).CanViewAdminSurface {
		return RouteAdmin
	}
	return RouteAddEntry
}

// CanManage reports whether an actor with the given role may delete or
// demote the target user. Super admin accounts are immune: no actor
// role may manage them. Role edits a super admin makes to their own
// account go through the update path, which checks actor identity, not
// this function.
func CanManage(actorRole, targetRole string) bool {
	if !CapabilitiesFor(actorRole).CanManageUsers {
		return false
	}
	return targetRole != RoleSuperAdmin
}
