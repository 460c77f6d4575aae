package service

import (
	"context"
	"fmt"

	"user_identity/internal/crypto"
	"user_identity/internal/models"
	"user_identity/internal/repository"
)

// Bootstrap administrator credentials seeded by Provision.
const (
	AdminUsername = "admin"
	adminPassword = "admin"
)

// UserColumns is the layout of the user table, in order.
var UserColumns = []repository.Column{
	{Name: models.ColumnID, Type: repository.TypePrimaryKey},
	{Name: models.ColumnUsername, Type: repository.TypeString, Size: models.MaxUsernameLen, NotNull: true},
	{Name: models.ColumnPassword, Type: repository.TypeString, Size: models.MaxPasswordLen, NotNull: true},
	{Name: models.ColumnAuthKey, Type: repository.TypeString, Size: models.MaxAuthKeyLen, NotNull: true},
	{Name: models.ColumnAccessToken, Type: repository.TypeString, Size: models.MaxAccessTokenLen},
}

// Provisioner creates and drops the user table.
type Provisioner struct {
	schema     repository.Schema
	hasher     crypto.PasswordHasher
	newAuthKey func() string
}

func NewProvisioner(schema repository.Schema, hasher crypto.PasswordHasher) *Provisioner {
	return &Provisioner{
		schema:     schema,
		hasher:     hasher,
		newAuthKey: crypto.NewAuthKey,
	}
}

// Provision creates the user table and seeds the admin row.
func (p *Provisioner) Provision(ctx context.Context) error {
	if err := p.schema.CreateTable(ctx, models.UserTable, UserColumns); err != nil {
		return err
	}

	hash, err := p.hasher.Hash(adminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = p.schema.Insert(ctx, models.UserTable, []repository.Field{
		{Column: models.ColumnUsername, Value: AdminUsername},
		{Column: models.ColumnPassword, Value: hash},
		{Column: models.ColumnAuthKey, Value: p.newAuthKey()},
	})
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}

// Deprovision drops the user table with all of its rows.
func (p *Provisioner) Deprovision(ctx context.Context) error {
	return p.schema.DropTable(ctx, models.UserTable)
}
