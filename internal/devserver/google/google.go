// Package google talks to Google's OAuth endpoints on behalf of the
// devserver. Endpoint URLs come from config so tests can point them at a
// local stub.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	sc "github.com/creatorlink/creatorlink/internal/devserver/config"
)

// ErrExchange covers every failure talking to the provider, whether the code
// was rejected or the provider was unreachable.
var ErrExchange = errors.New("google exchange failed")

// Identity is the subset of the userinfo response the devserver cares about.
type Identity struct {
	Email    string `json:"email"`
	FullName string `json:"name"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Exchanger resolves Google authorization codes and access tokens to a
// verified identity.
type Exchanger struct {
	config *sc.Config
	client *http.Client
}

func NewExchanger(config *sc.Config) *Exchanger {
	return &Exchanger{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthURL builds the provider authorization URL the browser is sent to.
func (e *Exchanger) AuthURL() string {
	q := url.Values{}
	q.Set("client_id", e.config.GoogleClientID)
	q.Set("redirect_uri", e.config.GoogleRedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	q.Set("state", uuid.NewString())
	return e.config.GoogleAuthEndpoint + "?" + q.Encode()
}

// ExchangeCode trades an authorization code for an access token and loads the
// identity behind it.
func (e *Exchanger) ExchangeCode(ctx context.Context, code string) (*Identity, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", e.config.GoogleClientID)
	form.Set("client_secret", e.config.GoogleClientSecret)
	form.Set("redirect_uri", e.config.GoogleRedirectURL)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.config.GoogleTokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchange, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchange, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: token endpoint returned %d", ErrExchange, resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&tok); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchange, err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: token endpoint returned no access_token", ErrExchange)
	}

	return e.ExchangeToken(ctx, tok.AccessToken)
}

// ExchangeToken verifies an access token against the userinfo endpoint.
func (e *Exchanger) ExchangeToken(ctx context.Context, accessToken string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.config.GoogleUserinfoEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchange, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchange, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo endpoint returned %d", ErrExchange, resp.StatusCode)
	}

	var id Identity
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchange, err)
	}
	if id.Email == "" {
		return nil, fmt.Errorf("%w: userinfo returned no email", ErrExchange)
	}
	return &id, nil
}
