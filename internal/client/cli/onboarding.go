package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/creatorlink/creatorlink/internal/client/api"
	"github.com/creatorlink/creatorlink/internal/client/models"
	"github.com/creatorlink/creatorlink/internal/client/session"
)

// ChooseRole runs the role-selection screen: pick influencer or brand (or
// stay a plain user) and let the session layer decide where to go next.
func (a *App) ChooseRole(ctx context.Context) error {
	role, err := a.promptRole()
	if err != nil {
		return err
	}

	if err := a.controller.UpdateRole(ctx, role, a.currentPath); err != nil {
		return a.reportAuthError(err)
	}

	fmt.Fprintf(a.out, "Role set to %s.\n", role)
	return nil
}

// CompleteProfile runs the onboarding screen: collect the profile fields and
// mark the profile completed.
func (a *App) CompleteProfile(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	bio, err := getSimpleText(a.reader, "Short bio", a.out)
	if err != nil {
		return err
	}

	update := models.ProfileUpdate{}
	if fullName != "" {
		update.FullName = &fullName
	}
	if bio != "" {
		update.Bio = &bio
	}

	user, _ := a.controller.Snapshot()
	if user != nil && user.Role == models.RoleBrand {
		company, err := getSimpleText(a.reader, "Company name", a.out)
		if err != nil {
			return err
		}
		if company != "" {
			update.Company = &company
		}
	}
	if user != nil && user.Role == models.RoleInfluencer {
		channel, err := getSimpleText(a.reader, "YouTube channel URL", a.out)
		if err != nil {
			return err
		}
		if channel != "" {
			update.YouTubeChannelURL = &channel
		}
	}

	done := true
	update.ProfileCompleted = &done

	if err := a.controller.UpdateProfile(ctx, update, a.currentPath); err != nil {
		return a.reportAuthError(err)
	}

	fmt.Fprintln(a.out, "Profile completed.")
	a.navigate(session.PathDashboard)
	return nil
}

// reportAuthError folds expected failures into user-facing messages: an
// expired session sends the user back to login, validation problems are
// printed. Anything else bubbles up.
func (a *App) reportAuthError(err error) error {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		fmt.Fprintln(a.out, "Your session expired, please log in again.")
		a.navigate(session.PathLogin)
		return nil
	case errors.Is(err, api.ErrValidation):
		fmt.Fprintf(a.out, "Rejected: %v\n", err)
		return nil
	default:
		return err
	}
}
