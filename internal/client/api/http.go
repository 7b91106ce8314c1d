// Package api implements the REST gateway to the CreatorLink backend.
// Every call attaches the configured bearer token and maps HTTP failures
// to the package sentinel errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/creatorlink/creatorlink/internal/client/models"
)

const defaultTimeout = 15 * time.Second

// errorBody is the backend's error payload shape.
type errorBody struct {
	Detail string `json:"detail"`
}

// HTTPGateway is the Gateway implementation over net/http.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	token   string
}

// NewHTTPGateway constructs a gateway for the backend at baseURL
// (e.g. "http://localhost:8000").
func NewHTTPGateway(baseURL string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// SetTimeout overrides the per-request deadline.
func (g *HTTPGateway) SetTimeout(d time.Duration) { g.client.Timeout = d }

func (g *HTTPGateway) SetToken(token string) { g.token = token }

func (g *HTTPGateway) Token() string { return g.token }

// do executes one JSON request with the currently configured token.
func (g *HTTPGateway) do(ctx context.Context, method, path string, in, out any) error {
	return g.doAs(ctx, method, path, g.token, in, out)
}

// doAs executes one JSON request with an explicit bearer token. A non-nil out
// is decoded from a 2xx body. Non-2xx responses come back as *statusError so
// callers can remap by code; transport failures come back wrapped in
// ErrUnavailable.
func (g *HTTPGateway) doAs(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		// A malformed error body still yields a usable statusError.
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return &statusError{code: resp.StatusCode, detail: eb.Detail}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
	}
	return nil
}

// statusError is an internal carrier for the HTTP status and backend detail.
// It never escapes the package: every exported method remaps it.
type statusError struct {
	code   int
	detail string
}

func (e *statusError) Error() string {
	if e.detail == "" {
		return fmt.Sprintf("http status %d", e.code)
	}
	return fmt.Sprintf("http status %d: %s", e.code, e.detail)
}

// remap converts a statusError to the sentinel designated for its code,
// falling back to a generic wrapped error for unexpected statuses.
func remap(err error, byCode map[int]error) error {
	if err == nil {
		return nil
	}
	se, ok := err.(*statusError)
	if !ok {
		return err
	}
	sentinel, ok := byCode[se.code]
	if !ok {
		return fmt.Errorf("unexpected backend response: %s", se.Error())
	}
	if se.detail != "" {
		return fmt.Errorf("%w: %s", sentinel, se.detail)
	}
	return sentinel
}

func (g *HTTPGateway) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	in := map[string]string{"email": email, "password": password}
	var out models.AuthResponse
	err := g.do(ctx, http.MethodPost, "/auth/login", in, &out)
	if err != nil {
		return nil, remap(err, map[int]error{
			http.StatusUnauthorized: ErrInvalidCredentials,
			http.StatusBadRequest:   ErrValidation,
		})
	}
	return &out, nil
}

func (g *HTTPGateway) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	var out models.User
	err := g.do(ctx, http.MethodPost, "/auth/signup", req, &out)
	if err != nil {
		return nil, remap(err, map[int]error{
			http.StatusBadRequest: ErrValidation,
			http.StatusConflict:   ErrValidation,
		})
	}
	return &out, nil
}

func (g *HTTPGateway) CurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	err := g.do(ctx, http.MethodGet, "/auth/me", nil, &out)
	if err != nil {
		return nil, remap(err, map[int]error{
			http.StatusUnauthorized: ErrUnauthorized,
		})
	}
	return &out, nil
}

func (g *HTTPGateway) UpdateProfile(ctx context.Context, fields models.ProfileUpdate) (*models.User, error) {
	var out models.User
	err := g.do(ctx, http.MethodPost, "/auth/profile", fields, &out)
	if err != nil {
		return nil, remap(err, map[int]error{
			http.StatusUnauthorized: ErrUnauthorized,
			http.StatusBadRequest:   ErrValidation,
		})
	}
	return &out, nil
}

func (g *HTTPGateway) UpdateRole(ctx context.Context, role models.Role) (*models.User, error) {
	in := map[string]models.Role{"role": role}
	var out models.User
	err := g.do(ctx, http.MethodPost, "/auth/update-role", in, &out)
	if err != nil {
		return nil, remap(err, map[int]error{
			http.StatusUnauthorized: ErrUnauthorized,
			http.StatusBadRequest:   ErrValidation,
		})
	}
	return &out, nil
}

// Logout asks the backend to invalidate token. The session stays locally
// cleared even when this call fails, so callers treat errors as advisory.
func (g *HTTPGateway) Logout(ctx context.Context, token string) error {
	err := g.doAs(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
	return remap(err, map[int]error{
		http.StatusUnauthorized: ErrUnauthorized,
	})
}

func (g *HTTPGateway) GoogleAuthURL(ctx context.Context) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := g.do(ctx, http.MethodGet, "/auth/google/url", nil, &out); err != nil {
		return "", oauthErr(err)
	}
	return out.URL, nil
}

func (g *HTTPGateway) ExchangeGoogleCode(ctx context.Context, code string) (*models.AuthResponse, error) {
	in := map[string]string{"code": code}
	var out models.AuthResponse
	if err := g.do(ctx, http.MethodPost, "/auth/google/callback", in, &out); err != nil {
		return nil, oauthErr(err)
	}
	return &out, nil
}

func (g *HTTPGateway) ExchangeGoogleToken(ctx context.Context, providerToken string) (*models.AuthResponse, error) {
	in := map[string]string{"access_token": providerToken}
	var out models.AuthResponse
	if err := g.do(ctx, http.MethodPost, "/auth/google", in, &out); err != nil {
		return nil, oauthErr(err)
	}
	return &out, nil
}

// oauthErr folds any backend rejection of an OAuth exchange into ErrOAuth.
// Transport failures keep ErrUnavailable so callers can distinguish
// "provider said no" from "backend unreachable".
func oauthErr(err error) error {
	se, ok := err.(*statusError)
	if !ok {
		return err
	}
	if se.detail != "" {
		return fmt.Errorf("%w: %s", ErrOAuth, se.detail)
	}
	return fmt.Errorf("%w: %s", ErrOAuth, se.Error())
}
