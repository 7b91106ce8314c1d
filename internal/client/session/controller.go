// Package session owns the client-side authentication state machine: one
// resolution pass at startup, a single source of truth for (user, loading),
// and the mutating operations pages call. Redirect decisions are centralized
// in Decide and applied uniformly after every state transition.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/creatorlink/creatorlink/internal/client/api"
	"github.com/creatorlink/creatorlink/internal/client/models"
	"github.com/creatorlink/creatorlink/internal/client/tokenstore"
	"github.com/creatorlink/creatorlink/internal/logging"
)

// Controller is the single writer of session state. Consumers read it via
// Snapshot and must not retain the returned user across operations.
type Controller struct {
	gateway api.Gateway
	store   tokenstore.Store
	nav     Navigator
	logger  logging.Logger

	resolver *Resolver

	mu        sync.Mutex
	user      *models.User
	token     string
	loading   bool
	resolving bool
	resolved  bool
	// seq increases with every state write. A resolution that finds seq
	// advanced past the value it started with still applies its state
	// (last write wins) but suppresses its navigation side effect.
	seq uint64
}

func NewController(gateway api.Gateway, store tokenstore.Store, nav Navigator, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	return &Controller{
		gateway:  gateway,
		store:    store,
		nav:      nav,
		logger:   logger,
		resolver: NewResolver(store, gateway, logger),
		loading:  true,
	}
}

// Snapshot returns the current user (a copy; nil when unauthenticated) and
// whether the initial resolution is still in progress.
func (c *Controller) Snapshot() (*models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil, c.loading
	}
	u := *c.user
	return &u, c.loading
}

// Token returns the bearer token of the current session, empty when
// unauthenticated.
func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Resolve runs the startup resolution once. Duplicate calls while a
// resolution is in flight, or after one completed, are no-ops, so mounting
// the same consumer twice cannot trigger a second verification call.
// loading flips to false only after the redirect policy has been evaluated.
func (c *Controller) Resolve(ctx context.Context, currentPath string) {
	c.mu.Lock()
	if c.resolving || c.resolved {
		c.mu.Unlock()
		return
	}
	c.resolving = true
	startSeq := c.seq
	c.mu.Unlock()

	res := c.resolver.Resolve(ctx)

	c.mu.Lock()
	c.resolving = false
	c.resolved = true
	conflicting := c.seq != startSeq
	c.seq++
	if res != nil {
		c.user = res.User
		c.token = res.Token
	} else if !conflicting {
		c.user = nil
		c.token = ""
	}
	target, redirect := Decide(c.user, currentPath)
	c.loading = false
	c.mu.Unlock()

	if redirect && !conflicting {
		c.logger.Debug(ctx, "redirecting after resolution", "target", target)
		c.nav.Navigate(target)
	}
}

// Login authenticates with email and password. On failure the prior session
// state is untouched and the typed gateway error is returned.
func (c *Controller) Login(ctx context.Context, email, password, currentPath string) error {
	startSeq := c.currentSeq()

	resp, err := c.gateway.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return c.applyAuth(ctx, resp, currentPath, startSeq)
}

// LoginWithGoogle fetches the provider consent URL. The caller sends the
// user there; the redirect lands back in ConsumeCallback.
func (c *Controller) LoginWithGoogle(ctx context.Context) (string, error) {
	return c.gateway.GoogleAuthURL(ctx)
}

// ConsumeCallback handles an inbound OAuth redirect URL: authorization-code
// and implicit-flow shapes converge on the same post-exchange path. A
// provider-reported error short-circuits without a gateway call.
func (c *Controller) ConsumeCallback(ctx context.Context, rawURL, currentPath string) error {
	startSeq := c.currentSeq()

	cb := ParseCallback(rawURL)

	var (
		resp *models.AuthResponse
		err  error
	)
	switch cb.Kind {
	case CallbackProviderError:
		return fmt.Errorf("%w: %s", api.ErrOAuth, cb.Reason)
	case CallbackCode:
		resp, err = c.gateway.ExchangeGoogleCode(ctx, cb.Code)
	case CallbackImplicitToken:
		resp, err = c.gateway.ExchangeGoogleToken(ctx, cb.Token)
	default:
		return fmt.Errorf("%w: callback carried no credentials", api.ErrOAuth)
	}
	if err != nil {
		return err
	}
	return c.applyAuth(ctx, resp, currentPath, startSeq)
}

// SetAuthenticated installs an already-exchanged (user, token) pair, for
// callers that performed the exchange themselves.
func (c *Controller) SetAuthenticated(ctx context.Context, user *models.User, token, currentPath string) error {
	startSeq := c.currentSeq()
	return c.applyAuth(ctx, &models.AuthResponse{AccessToken: token, User: user}, currentPath, startSeq)
}

// Signup creates an account. It does not log the new account in: the backend
// may require email verification first.
func (c *Controller) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	return c.gateway.Signup(ctx, req)
}

// UpdateRole sets the account role and re-evaluates the redirect policy
// (picking influencer or brand typically gates into onboarding next).
func (c *Controller) UpdateRole(ctx context.Context, role models.Role, currentPath string) error {
	user, err := c.gateway.UpdateRole(ctx, role)
	if err != nil {
		return c.bearerFailure(ctx, err)
	}
	c.applyUser(ctx, user, currentPath)
	return nil
}

// UpdateProfile updates onboarding profile fields.
func (c *Controller) UpdateProfile(ctx context.Context, fields models.ProfileUpdate, currentPath string) error {
	user, err := c.gateway.UpdateProfile(ctx, fields)
	if err != nil {
		return c.bearerFailure(ctx, err)
	}
	c.applyUser(ctx, user, currentPath)
	return nil
}

// logoutTimeout bounds the advisory server-side invalidation call.
const logoutTimeout = 5 * time.Second

// Logout clears the session synchronously: token store, local state, and the
// gateway credential. The server-side invalidation call is fire-and-forget;
// it runs on a detached context and never blocks the caller.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Warn(ctx, "clearing token store on logout failed", "error", err)
	}

	c.mu.Lock()
	token := c.token
	c.seq++
	c.user = nil
	c.token = ""
	c.loading = false
	c.mu.Unlock()

	c.gateway.SetToken("")

	if token == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), logoutTimeout)
		defer cancel()
		if err := c.gateway.Logout(ctx, token); err != nil {
			c.logger.Debug(ctx, "server-side logout failed", "error", err)
		}
	}()
}

// applyAuth is the shared post-exchange path (password login, both OAuth
// flows, SetAuthenticated): persist the token, install the session, evaluate
// the redirect policy. Persisting comes first so a storage failure never
// leaves a session the next startup cannot see.
func (c *Controller) applyAuth(ctx context.Context, resp *models.AuthResponse, currentPath string, startSeq uint64) error {
	if resp == nil || resp.User == nil || resp.AccessToken == "" {
		return fmt.Errorf("%w: backend returned an incomplete credential", api.ErrOAuth)
	}

	if err := c.store.Save(ctx, resp.AccessToken); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}

	c.gateway.SetToken(resp.AccessToken)

	c.mu.Lock()
	conflicting := c.seq != startSeq
	c.seq++
	c.user = resp.User
	c.token = resp.AccessToken
	c.loading = false
	target, redirect := Decide(c.user, currentPath)
	c.mu.Unlock()

	c.logger.Info(ctx, "session established", "user_id", resp.User.ID, "role", string(resp.User.Role))

	if redirect && !conflicting {
		c.nav.Navigate(target)
	}
	return nil
}

// applyUser installs an updated user record for an unchanged token and
// re-runs the redirect policy.
func (c *Controller) applyUser(ctx context.Context, user *models.User, currentPath string) {
	c.mu.Lock()
	c.seq++
	c.user = user
	c.loading = false
	target, redirect := Decide(c.user, currentPath)
	c.mu.Unlock()

	if redirect {
		c.nav.Navigate(target)
	}
}

// bearerFailure handles errors from bearer-authenticated mutations. An
// Unauthorized mid-session means the token went stale: fail closed exactly
// like at startup so protected state cannot keep rendering.
func (c *Controller) bearerFailure(ctx context.Context, err error) error {
	if !errors.Is(err, api.ErrUnauthorized) {
		return err
	}

	c.logger.Info(ctx, "token rejected mid-session, clearing session")
	if cerr := c.store.Clear(ctx); cerr != nil {
		c.logger.Warn(ctx, "clearing stale token failed", "error", cerr)
	}
	c.gateway.SetToken("")

	c.mu.Lock()
	c.seq++
	c.user = nil
	c.token = ""
	c.loading = false
	c.mu.Unlock()

	return err
}

func (c *Controller) currentSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}
