package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/creatorlink/creatorlink/internal/devserver/auth"
)

var (
	ErrBadCredentials = errors.New("incorrect email or password")

	// ErrInvalidArgument marks rejected input; wrapped messages carry the
	// specific reason and reach the client as the error detail.
	ErrInvalidArgument = errors.New("invalid argument")
)

// assignableRoles are the roles an account may pick for itself.
var assignableRoles = map[string]struct{}{
	"user":       {},
	"influencer": {},
	"brand":      {},
}

// Service implements account signup, login, and profile/role mutation on top
// of a Repository.
type Service struct {
	repo          Repository
	secretKey     []byte
	tokenValidity time.Duration
}

func NewService(repo Repository, secretKey []byte, tokenValidity time.Duration) *Service {
	return &Service{repo: repo, secretKey: secretKey, tokenValidity: tokenValidity}
}

// Signup creates a password-based account. The account is not logged in by
// this call.
func (s *Service) Signup(ctx context.Context, email, password, fullName, role string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidArgument)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidArgument)
	}
	if role == "" {
		role = "user"
	}
	if _, ok := assignableRoles[role]; !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidArgument, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	return s.repo.Create(ctx, &User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     fullName,
	})
}

// Authenticate verifies the credentials and mints a bearer token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrBadCredentials
		}
		return nil, "", err
	}
	if user.PasswordHash == "" {
		// OAuth-only account.
		return nil, "", ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrBadCredentials
	}

	return s.issueToken(user)
}

// ByToken verifies a bearer token and loads its account. Any verification
// failure comes back as auth.ErrInvalidToken.
func (s *Service) ByToken(ctx context.Context, token string) (*User, error) {
	id, err := auth.GetUserIDFromToken(token, s.secretKey)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// UpdateRole sets the account's role. The read-modify-write runs in one
// transaction.
func (s *Service) UpdateRole(ctx context.Context, userID, role string) (*User, error) {
	if _, ok := assignableRoles[role]; !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidArgument, role)
	}

	var out *User
	err := s.repo.InTx(ctx, func(repo Repository) error {
		user, err := repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		user.Role = role
		out, err = repo.Update(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProfile applies the non-nil fields of update to the account. The
// read-modify-write runs in one transaction.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*User, error) {
	var out *User
	err := s.repo.InTx(ctx, func(repo Repository) error {
		user, err := repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if update.FullName != nil {
			user.FullName = *update.FullName
		}
		if update.Bio != nil {
			user.Bio = *update.Bio
		}
		if update.Company != nil {
			user.Company = *update.Company
		}
		if update.YouTubeChannelURL != nil {
			user.YouTubeChannelURL = *update.YouTubeChannelURL
		}
		if update.ProfileCompleted != nil {
			user.ProfileCompleted = *update.ProfileCompleted
		}

		out, err = repo.Update(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindOrCreateOAuth resolves an OAuth identity to an account, creating one
// on first sign-in, and mints a bearer token.
func (s *Service) FindOrCreateOAuth(ctx context.Context, email, fullName string) (*User, string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, "", fmt.Errorf("%w: provider returned no email", ErrInvalidArgument)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		user, err = s.repo.Create(ctx, &User{
			Email:    email,
			Role:     "user",
			FullName: fullName,
		})
	}
	if err != nil {
		return nil, "", err
	}

	return s.issueToken(user)
}

func (s *Service) issueToken(user *User) (*User, string, error) {
	token, err := auth.GenerateToken(user.ID, s.secretKey, s.tokenValidity)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}
	return user, token, nil
}
