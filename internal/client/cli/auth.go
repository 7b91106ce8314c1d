package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/creatorlink/creatorlink/internal/client/api"
	"github.com/creatorlink/creatorlink/internal/client/models"
	"github.com/creatorlink/creatorlink/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. On success the session
// layer may redirect into role selection or onboarding; on bad credentials
// the error is shown and the prior state is kept.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.controller.Login(ctx, email, string(password), a.currentPath); err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			fmt.Fprintln(a.out, "Incorrect email or password.")
			return nil
		}
		return err
	}

	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

// Signup prompts for the new account's details and creates it. The account
// still has to log in afterwards (the backend may require email
// verification first).
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}

	role, err := a.promptRole()
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	_, err = a.controller.Signup(ctx, models.SignupRequest{
		Email:    email,
		Password: string(password),
		FullName: fullName,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, api.ErrValidation) {
			fmt.Fprintf(a.out, "Signup rejected: %v\n", err)
			return nil
		}
		return err
	}

	fmt.Fprintln(a.out, "Account created. Log in to continue.")
	return nil
}

// Google starts the OAuth flow: print the consent URL, then consume the
// redirect URL the user pastes back (code or implicit-token shape).
func (a *App) Google(ctx context.Context) error {
	url, err := a.controller.LoginWithGoogle(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Open this URL in your browser:\n%s\n", url)

	redirect, err := getSimpleText(a.reader, "Paste the URL you were redirected to", a.out)
	if err != nil {
		return err
	}

	if err := a.controller.ConsumeCallback(ctx, redirect, a.currentPath); err != nil {
		if errors.Is(err, api.ErrOAuth) {
			fmt.Fprintf(a.out, "Google sign-in failed: %v\n", err)
			a.navigate(session.PathLogin)
			return nil
		}
		return err
	}

	fmt.Fprintln(a.out, "Logged in with Google.")
	return nil
}

// Whoami prints the current session.
func (a *App) Whoami(ctx context.Context) {
	user, loading := a.controller.Snapshot()
	switch {
	case loading:
		fmt.Fprintln(a.out, "Session still resolving.")
	case user == nil:
		fmt.Fprintln(a.out, "Not logged in.")
	default:
		fmt.Fprintf(a.out, "%s (%s) role=%s profile_completed=%t\n",
			user.Email, user.ID, user.Role, user.ProfileCompleted)
	}
}

// Logout clears the session. Always locally effective.
func (a *App) Logout(ctx context.Context) {
	a.controller.Logout(ctx)
	a.navigate(session.PathLogin)
	fmt.Fprintln(a.out, "Logged out.")
}

func (a *App) promptRole() (models.Role, error) {
	choice, err := getSimpleText(a.reader, "Choose a role: influencer, brand or user", a.out)
	if err != nil {
		return "", err
	}
	role := models.Role(choice)
	if !role.Valid() || role == models.RoleAdmin {
		fmt.Fprintln(a.out, "Unknown role, keeping the default.")
		return models.RoleUser, nil
	}
	return role, nil
}
