package service

import (
	"context"

	"user_identity/internal/crypto"
	"user_identity/internal/models"
	"user_identity/internal/repository"
)

// Authorization exposes identity lookups and credential checks.
type Authorization interface {
	models.IdentityFinder

	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ValidatePassword(u *models.User, password string) (bool, error)
	SetPassword(u *models.User, password string) error

	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	ResolveSession(ctx context.Context, id int64, authKey string) (models.Identity, error)
	Register(ctx context.Context, username, password string) (*models.User, error)
	ChangePassword(ctx context.Context, username, password string) error
}

// Service aggregates the application services.
type Service struct {
	Authorization
}

// NewService wires the repository layer and the password hasher into concrete services.
func NewService(repos *repository.Repository, hasher crypto.PasswordHasher) *Service {
	return &Service{
		Authorization: NewIdentityService(repos.Users, hasher),
	}
}
