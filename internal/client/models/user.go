// Package models defines the wire types shared by the API gateway and the
// session layer.
package models

// Role is the marketplace role assigned to an account.
type Role string

const (
	// RoleUser is the default role assigned at signup before the account
	// picks a side of the marketplace. Treated as "unset" for onboarding.
	RoleUser       Role = "user"
	RoleInfluencer Role = "influencer"
	RoleBrand      Role = "brand"
	RoleAdmin      Role = "admin"
)

// Unset reports whether the role still has to be chosen. A missing role and
// the signup default are equivalent for gating purposes.
func (r Role) Unset() bool {
	return r == "" || r == RoleUser
}

// NeedsOnboarding reports whether accounts with this role must complete a
// profile before using the rest of the product.
func (r Role) NeedsOnboarding() bool {
	return r == RoleInfluencer || r == RoleBrand
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleInfluencer, RoleBrand, RoleAdmin:
		return true
	}
	return false
}

// User is the account record as returned by the backend.
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Role             Role   `json:"role"`
	FullName         string `json:"full_name,omitempty"`
	ProfileCompleted bool   `json:"profile_completed"`
}

// AuthResponse is the payload of login and OAuth exchange endpoints.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// SignupRequest is the payload for account creation.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// ProfileUpdate carries the onboarding profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	FullName          *string `json:"full_name,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	Company           *string `json:"company,omitempty"`
	YouTubeChannelURL *string `json:"youtube_channel_url,omitempty"`
	ProfileCompleted  *bool   `json:"profile_completed,omitempty"`
}
