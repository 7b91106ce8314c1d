package users

import "time"

// User is the server-side account record. PasswordHash is empty for accounts
// created through OAuth.
type User struct {
	ID                string
	Email             string
	PasswordHash      string
	Role              string
	FullName          string
	Bio               string
	Company           string
	YouTubeChannelURL string
	ProfileCompleted  bool
	CreatedAt         time.Time
}

// ProfileUpdate carries profile mutations. Nil pointers mean "leave
// unchanged".
type ProfileUpdate struct {
	FullName          *string
	Bio               *string
	Company           *string
	YouTubeChannelURL *string
	ProfileCompleted  *bool
}
