package session

import "github.com/creatorlink/creatorlink/internal/client/models"

// Decide is the single redirect policy applied after every state transition.
// It maps the authenticated user and the current path to a forced navigation
// target. ok is false when the requested page may render as-is.
//
// Decide never redirects away from the target it selects, so repeated
// evaluation cannot loop. An unauthenticated user yields no target: per-page
// gates own that case.
func Decide(user *models.User, currentPath string) (target string, ok bool) {
	if user == nil {
		return "", false
	}

	if user.Role.Unset() {
		if currentPath == PathRoleSelection {
			return "", false
		}
		return PathRoleSelection, true
	}

	if user.Role.NeedsOnboarding() && !user.ProfileCompleted {
		if currentPath == PathOnboarding {
			return "", false
		}
		return PathOnboarding, true
	}

	return "", false
}
