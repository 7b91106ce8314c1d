package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creatorlink/creatorlink/internal/client/models"
)

func newServer(t *testing.T, handler http.HandlerFunc) *HTTPGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPGateway(srv.URL)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_Success(t *testing.T) {
	g := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "a@b.com", in["email"])

		writeJSON(w, http.StatusOK, models.AuthResponse{
			AccessToken: "tok-1",
			TokenType:   "bearer",
			User:        &models.User{ID: "u1", Email: "a@b.com", Role: models.RoleBrand},
		})
	})

	resp, err := g.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok-1", resp.AccessToken)
	require.Equal(t, models.RoleBrand, resp.User.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	g := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "incorrect email or password"})
	})

	_, err := g.Login(context.Background(), "a@b.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Contains(t, err.Error(), "incorrect email or password")
}

func TestSignup_DuplicateEmail(t *testing.T) {
	g := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"detail": "email already registered"})
	})

	_, err := g.Signup(context.Background(), models.SignupRequest{Email: "a@b.com", Password: "x"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCurrentUser_AttachesBearer(t *testing.T) {
	g := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-7", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, models.User{ID: "u1", Email: "a@b.com"})
	})
	g.SetToken("tok-7")

	u, err := g.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)
}

func TestCurrentUser_NoTokenHeaderWhenUnset(t *testing.T) {
	g := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "missing token"})
	})

	_, err := g.CurrentUser(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateRole_Unauthorized(t *testing.T) {
	g := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	})
	g.SetToken("stale")

	_, err := g.UpdateRole(context.Background(), models.RoleBrand)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateProfile_Success(t *testing.T) {
	g := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/profile", r.URL.Path)
		var in models.ProfileUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.NotNil(t, in.FullName)
		writeJSON(w, http.StatusOK, models.User{ID: "u1", FullName: *in.FullName, ProfileCompleted: true})
	})
	g.SetToken("tok")

	name := "Ada"
	u, err := g.UpdateProfile(context.Background(), models.ProfileUpdate{FullName: &name})
	require.NoError(t, err)
	require.True(t, u.ProfileCompleted)
}

func TestExchangeGoogleCode_Rejected(t *testing.T) {
	g := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid code"})
	})

	_, err := g.ExchangeGoogleCode(context.Background(), "bad-code")
	require.ErrorIs(t, err, ErrOAuth)
	require.Contains(t, err.Error(), "invalid code")
}

func TestExchangeGoogleToken_Success(t *testing.T) {
	g := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/google", r.URL.Path)
		writeJSON(w, http.StatusOK, models.AuthResponse{
			AccessToken: "tok-g",
			User:        &models.User{ID: "u2", Role: models.RoleUser},
		})
	})

	resp, err := g.ExchangeGoogleToken(context.Background(), "ya29.provider")
	require.NoError(t, err)
	require.Equal(t, "tok-g", resp.AccessToken)
}

func TestGoogleAuthURL(t *testing.T) {
	g := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/google/url", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]string{"url": "https://accounts.google.com/o/oauth2/v2/auth?x=1"})
	})

	u, err := g.GoogleAuthURL(context.Background())
	require.NoError(t, err)
	require.Contains(t, u, "accounts.google.com")
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing is listening anymore

	g := NewHTTPGateway(srv.URL)
	_, err := g.CurrentUser(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLogout_AdvisoryError(t *testing.T) {
	g := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/logout", r.URL.Path)
		require.Equal(t, "Bearer stale", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	})

	require.ErrorIs(t, g.Logout(context.Background(), "stale"), ErrUnauthorized)
}
