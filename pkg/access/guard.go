package access

// State is the guard's view of the session.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticatedUser
	StateAuthenticatedAdmin
)

func (s State) String() string {
	switch s {
	case StateAuthenticatedUser:
		return "authenticated_user"
	case StateAuthenticatedAdmin:
		return "authenticated_admin"
	default:
		return "anonymous"
	}
}

// Decision is the outcome of resolving a route: either render it, or
// go somewhere else instead. Unauthorized navigation is corrected
// silently, never surfaced as an error.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Guard checks every route transition against the session and the
// access policy. It holds no state of its own beyond the injected
// session; staleness of the held identity is the backend's problem, so
// there is no time-based expiry here.
type Guard struct {
	session *Session
}

func NewGuard(session *Session) *Guard {
	return &Guard{session: session}
}

// State derives the guard state from the current identity.
func (g *Guard) State() State {
	id := g.session.Current()
	switch {
	case id == nil:
		return StateAnonymous
	case CapabilitiesFor(id.Role).CanViewAdminSurface:
		return StateAuthenticatedAdmin
	default:
		return StateAuthenticatedUser
	}
}

// Resolve decides whether the current identity may render the route.
// Anonymous visitors are sent to login for any protected route;
// authenticated visitors hitting an entry route (login, register,
// forgot-password) or a route above their tier are sent to their
// landing route.
func (g *Guard) Resolve(route string) Decision {
	id := g.session.Current()

	switch route {
	case RouteLogin, RouteRegister, RouteForgotPassword:
		if id != nil {
			return Decision{RedirectTo: LandingRouteFor(id)}
		}
		return Decision{Allow: true}
	case RouteAdmin:
		if id == nil {
			return Decision{RedirectTo: RouteLogin}
		}
		if !CapabilitiesFor(id.Role).CanViewAdminSurface {
			return Decision{RedirectTo: LandingRouteFor(id)}
		}
		return Decision{Allow: true}
	case RouteAddEntry, RouteEntries:
		if id == nil {
			return Decision{RedirectTo: RouteLogin}
		}
		return Decision{Allow: true}
	default:
		// Unknown routes behave like protected user routes.
		if id == nil {
			return Decision{RedirectTo: RouteLogin}
		}
		return Decision{Allow: true}
	}
}
