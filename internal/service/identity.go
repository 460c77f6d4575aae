package service

import (
	"context"
	"errors"
	"fmt"

	"user_identity/internal/crypto"
	"user_identity/internal/models"
	"user_identity/internal/repository"
)

// Domain errors for auth flows.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = repository.ErrUserNotFound
)

// IdentityService resolves user records and checks their credentials.
// Storage and hashing are delegated to the injected repository and hasher.
type IdentityService struct {
	users      repository.Users
	hasher     crypto.PasswordHasher
	newAuthKey func() string
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*IdentityService)(nil)

func NewIdentityService(users repository.Users, hasher crypto.PasswordHasher) *IdentityService {
	return &IdentityService{
		users:      users,
		hasher:     hasher,
		newAuthKey: crypto.NewAuthKey,
	}
}

// FindByID returns the user with the given primary key, or (nil, nil).
// Non-positive ids never match a row.
func (s *IdentityService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, nil
	}
	return s.users.FindOne(ctx, repository.Criteria{models.ColumnID: id})
}

// FindByUsername returns the user with exactly this username, or (nil, nil).
func (s *IdentityService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, nil
	}
	return s.users.FindOne(ctx, repository.Criteria{models.ColumnUsername: username})
}

// FindIdentity is FindByID seen through the Identity interface.
func (s *IdentityService) FindIdentity(ctx context.Context, id int64) (models.Identity, error) {
	u, err := s.FindByID(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	return u, nil
}

// FindIdentityByAccessToken always fails with models.ErrNotSupported.
func (s *IdentityService) FindIdentityByAccessToken(context.Context, string, string) (models.Identity, error) {
	return nil, models.ErrNotSupported
}

// ValidatePassword checks password against the stored hash.
// A malformed stored hash is reported as an error, not as a mismatch.
func (s *IdentityService) ValidatePassword(u *models.User, password string) (bool, error) {
	return s.hasher.Verify(password, u.PasswordHash)
}

// SetPassword replaces the stored hash in memory. Persisting it is up to the caller.
func (s *IdentityService) SetPassword(u *models.User, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// Authenticate returns the user for a valid username/password pair.
func (s *IdentityService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := s.ValidatePassword(u, password)
	if err != nil {
		return nil, fmt.Errorf("validate password for %q: %w", username, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ResolveSession restores an identity from a stored id and authkey.
func (s *IdentityService) ResolveSession(ctx context.Context, id int64, authKey string) (models.Identity, error) {
	identity, err := s.FindIdentity(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity == nil || !identity.ValidateAuthKey(authKey) {
		return nil, ErrInvalidCredentials
	}
	return identity, nil
}

// Register creates and persists a new user with a fresh authkey.
func (s *IdentityService) Register(ctx context.Context, username, password string) (*models.User, error) {
	u := &models.User{Username: username, AuthKey: s.newAuthKey()}
	if err := s.SetPassword(u, password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword rehashes and stores a new password for an existing user.
func (s *IdentityService) ChangePassword(ctx context.Context, username, password string) error {
	u, err := s.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if err := s.SetPassword(u, password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}
	if err := u.Validate(); err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, u.ID, u.PasswordHash)
}
