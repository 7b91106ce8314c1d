package api

import (
	"context"

	"github.com/creatorlink/creatorlink/internal/client/models"
)

// Gateway is the thin executor for backend calls. It holds the currently
// configured bearer token and nothing else; session state lives in the
// session controller.
type Gateway interface {
	// SetToken configures the bearer token attached to subsequent calls.
	// An empty string detaches it.
	SetToken(token string)
	// Token returns the currently configured bearer token.
	Token() string

	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, fields models.ProfileUpdate) (*models.User, error)
	UpdateRole(ctx context.Context, role models.Role) (*models.User, error)
	// Logout asks the backend to invalidate token. The token is passed
	// explicitly so the call can run after the session already detached
	// its own credential.
	Logout(ctx context.Context, token string) error

	GoogleAuthURL(ctx context.Context) (string, error)
	ExchangeGoogleCode(ctx context.Context, code string) (*models.AuthResponse, error)
	ExchangeGoogleToken(ctx context.Context, providerToken string) (*models.AuthResponse, error)
}
