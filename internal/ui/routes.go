package ui

// Route is a screen of the client.
type Route string

const (
	RouteLogin     Route = "login"
	RouteRegister  Route = "register"
	RouteDashboard Route = "dashboard"
)

// Guard returns where a request for want should actually land. The dashboard
// admits only authenticated sessions; the sign-in screens send authenticated
// users on to the dashboard.
func Guard(authenticated bool, want Route) Route {
	switch want {
	case RouteDashboard:
		if !authenticated {
			return RouteLogin
		}
	case RouteLogin, RouteRegister:
		if authenticated {
			return RouteDashboard
		}
	default:
		if authenticated {
			return RouteDashboard
		}
		return RouteLogin
	}
	return want
}

// User-facing copy shared by the CLI commands and the shell.
const (
	MsgRegistered      = "Registration successful! Redirecting to login..."
	MsgAuthenticating  = "Authenticating..."
	MsgSettingUp       = "Setting up account..."
	MsgWelcomeTemplate = "Welcome back, %s!"
)
