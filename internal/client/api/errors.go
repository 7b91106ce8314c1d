package api

import "errors"

// Sentinel errors returned by the gateway. Callers match them with errors.Is;
// wrapped messages carry the backend's detail string when one was provided.
var (
	// ErrInvalidCredentials is returned when login is rejected (401).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation is returned for rejected signup/profile payloads
	// (400) and duplicate accounts (409).
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned when a bearer-authenticated call is
	// rejected (401): the token is invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrOAuth is returned when an OAuth code or token exchange fails.
	ErrOAuth = errors.New("oauth exchange failed")

	// ErrUnavailable is returned on transport failures, before any HTTP
	// status was received.
	ErrUnavailable = errors.New("server unavailable")
)
