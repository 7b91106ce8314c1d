// Package httpapi exposes the devserver's REST surface. Routes, payloads,
// and the {"detail": ...} error shape mirror what the client gateway sends
// and expects.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/creatorlink/creatorlink/internal/devserver/avatars"
	"github.com/creatorlink/creatorlink/internal/devserver/google"
	"github.com/creatorlink/creatorlink/internal/devserver/users"
	"github.com/creatorlink/creatorlink/internal/logging"
)

// Handler wires the HTTP routes to the devserver services.
type Handler struct {
	users   *users.Service
	google  *google.Exchanger
	avatars *avatars.Service
	logger  logging.Logger
}

func New(users *users.Service, google *google.Exchanger, avatars *avatars.Service, logger logging.Logger) *Handler {
	return &Handler{users: users, google: google, avatars: avatars, logger: logger}
}

// Routes builds the full route table wrapped in the logging middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", h.handleLogin)
	mux.HandleFunc("POST /auth/signup", h.handleSignup)
	mux.HandleFunc("GET /auth/me", h.withAuth(h.handleMe))
	mux.HandleFunc("POST /auth/profile", h.withAuth(h.handleUpdateProfile))
	mux.HandleFunc("POST /auth/update-role", h.withAuth(h.handleUpdateRole))
	mux.HandleFunc("POST /auth/logout", h.withAuth(h.handleLogout))
	mux.HandleFunc("GET /auth/google/url", h.handleGoogleURL)
	mux.HandleFunc("POST /auth/google/callback", h.handleGoogleCallback)
	mux.HandleFunc("POST /auth/google", h.handleGoogleToken)
	mux.HandleFunc("GET /auth/avatar-upload-url", h.withAuth(h.handleAvatarUploadURL))

	return h.withLogging(mux)
}

// userJSON is the account shape returned to clients. The password hash never
// leaves the server.
type userJSON struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	FullName          string `json:"full_name,omitempty"`
	Bio               string `json:"bio,omitempty"`
	Company           string `json:"company,omitempty"`
	YouTubeChannelURL string `json:"youtube_channel_url,omitempty"`
	ProfileCompleted  bool   `json:"profile_completed"`
}

func toUserJSON(u *users.User) userJSON {
	return userJSON{
		ID:                u.ID,
		Email:             u.Email,
		Role:              u.Role,
		FullName:          u.FullName,
		Bio:               u.Bio,
		Company:           u.Company,
		YouTubeChannelURL: u.YouTubeChannelURL,
		ProfileCompleted:  u.ProfileCompleted,
	}
}

type authResponseJSON struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        userJSON `json:"user"`
}

func toAuthResponse(u *users.User, token string) authResponseJSON {
	return authResponseJSON{AccessToken: token, TokenType: "bearer", User: toUserJSON(u)}
}

// requestUser returns the account the auth middleware attached.
func requestUser(r *http.Request) *users.User {
	u, _ := r.Context().Value(userContextKey).(*users.User)
	return u
}

// writeServiceError maps service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrBadCredentials):
		writeError(w, http.StatusUnauthorized, "incorrect email or password")
	case errors.Is(err, users.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, users.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, users.ErrNotFound):
		writeError(w, http.StatusNotFound, "account not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, token, err := h.users.Authenticate(r.Context(), in.Email, in.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(user, token))
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, err := h.users.Signup(r.Context(), in.Email, in.Password, in.FullName, in.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserJSON(user))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserJSON(requestUser(r)))
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in struct {
		FullName          *string `json:"full_name"`
		Bio               *string `json:"bio"`
		Company           *string `json:"company"`
		YouTubeChannelURL *string `json:"youtube_channel_url"`
		ProfileCompleted  *bool   `json:"profile_completed"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), requestUser(r).ID, users.ProfileUpdate{
		FullName:          in.FullName,
		Bio:               in.Bio,
		Company:           in.Company,
		YouTubeChannelURL: in.YouTubeChannelURL,
		ProfileCompleted:  in.ProfileCompleted,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(user))
}

func (h *Handler) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Role string `json:"role"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, err := h.users.UpdateRole(r.Context(), requestUser(r).ID, in.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(user))
}

// handleLogout acknowledges the logout. Tokens are stateless JWTs, so there
// is nothing to revoke server-side in the devserver.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGoogleURL(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"url": h.google.AuthURL()})
}

func (h *Handler) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &in); err != nil || in.Code == "" {
		writeError(w, http.StatusBadRequest, "authorization code is required")
		return
	}

	identity, err := h.google.ExchangeCode(r.Context(), in.Code)
	if err != nil {
		h.logger.Warn(r.Context(), "google code exchange failed", "error", err)
		writeError(w, http.StatusBadRequest, "google sign-in failed")
		return
	}
	h.finishGoogle(w, r, identity)
}

func (h *Handler) handleGoogleToken(w http.ResponseWriter, r *http.Request) {
	var in struct {
		AccessToken string `json:"access_token"`
	}
	if err := decodeJSON(r, &in); err != nil || in.AccessToken == "" {
		writeError(w, http.StatusBadRequest, "access token is required")
		return
	}

	identity, err := h.google.ExchangeToken(r.Context(), in.AccessToken)
	if err != nil {
		h.logger.Warn(r.Context(), "google token exchange failed", "error", err)
		writeError(w, http.StatusBadRequest, "google sign-in failed")
		return
	}
	h.finishGoogle(w, r, identity)
}

func (h *Handler) finishGoogle(w http.ResponseWriter, r *http.Request, identity *google.Identity) {
	user, token, err := h.users.FindOrCreateOAuth(r.Context(), identity.Email, identity.FullName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(user, token))
}

func (h *Handler) handleAvatarUploadURL(w http.ResponseWriter, r *http.Request) {
	key, uploadURL, err := h.avatars.PresignedUploadURL(r.Context(), requestUser(r).ID)
	if err != nil {
		h.logger.Error(r.Context(), "presigning avatar upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not presign upload")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "upload_url": uploadURL})
}
