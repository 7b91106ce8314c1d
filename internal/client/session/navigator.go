package session

// Well-known navigation targets. These mirror the routes of the web client;
// the CLI maps them onto its own screens.
const (
	PathLogin         = "/login"
	PathRoleSelection = "/auth/role-selection"
	PathOnboarding    = "/onboarding"
	PathDashboard     = "/dashboard"
)

// Navigator receives navigation side effects decided by the controller.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }
