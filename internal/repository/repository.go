package repository

import (
	"context"
	"database/sql"

	"user_identity/internal/models"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Schema creates and drops tables and inserts raw rows.
type Schema interface {
	CreateTable(ctx context.Context, name string, columns []Column) error
	DropTable(ctx context.Context, name string) error
	Insert(ctx context.Context, table string, fields []Field) (int64, error)
}

// Users looks up and stores user records.
// FindOne returns (nil, nil) when no row matches.
type Users interface {
	FindOne(ctx context.Context, criteria Criteria) (*models.User, error)
	Create(ctx context.Context, u *models.User) (int64, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

type Repository struct {
	Schema Schema
	Users  Users
}

func NewRepository(db DBTX) *Repository {
	return &Repository{
		Schema: NewSchemaSQLite(db),
		Users:  NewUserRepository(db),
	}
}
