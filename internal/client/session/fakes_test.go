package session

import (
	"context"
	"errors"
	"sync"

	"github.com/creatorlink/creatorlink/internal/client/models"
)

// ---- fake token store ----

type fakeStore struct {
	mu       sync.Mutex
	token    string
	ReadErr  error
	SaveErr  error
	ClearErr error

	Reads  int
	Saves  int
	Clears int
}

func (f *fakeStore) Save(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Saves++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.token = token
	return nil
}

func (f *fakeStore) Read(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reads++
	if f.ReadErr != nil {
		return "", f.ReadErr
	}
	return f.token, nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Clears++
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.token = ""
	return nil
}

func (f *fakeStore) stored() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// ---- fake gateway ----

type fakeGateway struct {
	mu    sync.Mutex
	token string

	LoginResp *models.AuthResponse
	LoginErr  error

	SignupResp *models.User
	SignupErr  error

	CurrentUserResp *models.User
	CurrentUserErr  error
	CurrentUserFn   func() (*models.User, error)

	UpdateProfileResp *models.User
	UpdateProfileErr  error

	UpdateRoleResp *models.User
	UpdateRoleErr  error

	LogoutErr error

	AuthURL    string
	AuthURLErr error

	CodeResp *models.AuthResponse
	CodeErr  error

	TokenResp *models.AuthResponse
	TokenErr  error

	CurrentUserCalls int
	LogoutCalls      int
	LastLogoutToken  string
	LastLoginEmail   string
	LastCode         string
	LastProviderTok  string
	LastRole         models.Role
}

func (f *fakeGateway) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeGateway) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeGateway) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	f.LastLoginEmail = email
	return f.LoginResp, f.LoginErr
}

func (f *fakeGateway) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	return f.SignupResp, f.SignupErr
}

func (f *fakeGateway) CurrentUser(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	f.CurrentUserCalls++
	f.mu.Unlock()
	if f.CurrentUserFn != nil {
		return f.CurrentUserFn()
	}
	return f.CurrentUserResp, f.CurrentUserErr
}

func (f *fakeGateway) UpdateProfile(ctx context.Context, fields models.ProfileUpdate) (*models.User, error) {
	return f.UpdateProfileResp, f.UpdateProfileErr
}

func (f *fakeGateway) UpdateRole(ctx context.Context, role models.Role) (*models.User, error) {
	f.LastRole = role
	return f.UpdateRoleResp, f.UpdateRoleErr
}

func (f *fakeGateway) Logout(ctx context.Context, token string) error {
	f.mu.Lock()
	f.LogoutCalls++
	f.LastLogoutToken = token
	f.mu.Unlock()
	return f.LogoutErr
}

func (f *fakeGateway) logoutState() (int, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LogoutCalls, f.LastLogoutToken
}

func (f *fakeGateway) GoogleAuthURL(ctx context.Context) (string, error) {
	return f.AuthURL, f.AuthURLErr
}

func (f *fakeGateway) ExchangeGoogleCode(ctx context.Context, code string) (*models.AuthResponse, error) {
	f.LastCode = code
	return f.CodeResp, f.CodeErr
}

func (f *fakeGateway) ExchangeGoogleToken(ctx context.Context, providerToken string) (*models.AuthResponse, error) {
	f.LastProviderTok = providerToken
	return f.TokenResp, f.TokenErr
}

// blockingLogoutGateway hangs the server-side logout call until released.
type blockingLogoutGateway struct {
	fakeGateway
	release chan struct{}
}

func (g *blockingLogoutGateway) Logout(ctx context.Context, token string) error {
	<-g.release
	return g.fakeGateway.Logout(ctx, token)
}

// ---- recording navigator ----

type recordingNav struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNav) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNav) targets() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

var errTransport = errors.New("connection refused")
