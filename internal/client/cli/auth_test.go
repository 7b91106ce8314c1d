package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creatorlink/creatorlink/internal/client/api"
	"github.com/creatorlink/creatorlink/internal/client/models"
	"github.com/creatorlink/creatorlink/internal/client/session"
	"github.com/creatorlink/creatorlink/internal/client/tokenstore"
)

func newTestApp(t *testing.T, handler http.Handler) (*App, *bytes.Buffer) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	db, err := tokenstore.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	out := &bytes.Buffer{}
	gateway := api.NewHTTPGateway(srv.URL)

	app := &App{
		db:          db,
		reader:      bufio.NewReader(strings.NewReader("")),
		out:         out,
		currentPath: session.PathDashboard,
	}
	store := tokenstore.NewSQLiteStore(db)
	app.controller = session.NewController(gateway, store, session.NavigatorFunc(app.navigate), nil)
	return app, out
}

func stubInput(t *testing.T, lines []string, password string) {
	t.Helper()

	oldText, oldPass := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = oldText, oldPass })

	i := 0
	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		require.Less(t, i, len(lines), "unexpected prompt: %s", prompt)
		line := lines[i]
		i++
		return line, nil
	}
	getPassword = func(w io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}

func TestLogin_GatesIntoRoleSelection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.AuthResponse{
			AccessToken: "tok-1",
			User:        &models.User{ID: "u1", Email: "a@b.com", Role: models.RoleUser},
		})
	})
	app, out := newTestApp(t, mux)
	stubInput(t, []string{"a@b.com"}, "pw")

	require.NoError(t, app.Login(context.Background()))

	require.Equal(t, session.PathRoleSelection, app.currentPath)
	require.Contains(t, out.String(), "Logged in.")
}

func TestLogin_BadCredentialsShown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "incorrect email or password"})
	})
	app, out := newTestApp(t, mux)
	stubInput(t, []string{"a@b.com"}, "wrong")

	require.NoError(t, app.Login(context.Background()))

	require.Contains(t, out.String(), "Incorrect email or password.")
	require.False(t, app.isLoggedIn())
}

func TestGoogle_ProviderErrorReturnsToLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/google/url", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://accounts.google.com/consent"})
	})
	app, out := newTestApp(t, mux)
	stubInput(t, []string{"https://app.example.com/auth/callback?error=access_denied"}, "")

	require.NoError(t, app.Google(context.Background()))

	require.Contains(t, out.String(), "Google sign-in failed")
	require.Equal(t, session.PathLogin, app.currentPath)
}

func TestChooseRole_ThenOnboardingRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/update-role", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.User{ID: "u1", Email: "a@b.com", Role: models.RoleBrand})
	})
	app, out := newTestApp(t, mux)
	app.currentPath = session.PathRoleSelection
	stubInput(t, []string{"brand"}, "")

	require.NoError(t, app.ChooseRole(context.Background()))

	require.Contains(t, out.String(), "Role set to brand.")
	require.Equal(t, session.PathOnboarding, app.currentPath)
}

func TestLogout_ClearsStoreEvenWhenServerFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.AuthResponse{
			AccessToken: "tok-1",
			User:        &models.User{ID: "u1", Email: "a@b.com", Role: models.RoleAdmin},
		})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	app, out := newTestApp(t, mux)
	stubInput(t, []string{"a@b.com"}, "pw")
	require.NoError(t, app.Login(context.Background()))
	require.True(t, app.isLoggedIn())

	app.Logout(context.Background())

	require.False(t, app.isLoggedIn())
	require.Equal(t, session.PathLogin, app.currentPath)
	require.Contains(t, out.String(), "Logged out.")

	tok, err := tokenstore.NewSQLiteStore(app.db).Read(context.Background())
	require.NoError(t, err)
	require.Empty(t, tok)
}
