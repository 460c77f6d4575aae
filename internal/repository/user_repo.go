package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"user_identity/internal/models"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	selectUserSQL         = `SELECT "id", "username", "password", "authkey", "accessToken" FROM "user"`
	insertUserSQL         = `INSERT INTO "user" ("username", "password", "authkey", "accessToken") VALUES (?, ?, ?, ?)`
	updateUserPasswordSQL = `UPDATE "user" SET "password" = ? WHERE "id" = ?`
)

// Criteria is an exact-match condition keyed by column name.
type Criteria map[string]any

// searchable lists the columns Criteria may reference.
var searchable = map[string]bool{
	models.ColumnID:       true,
	models.ColumnUsername: true,
}

// where renders criteria as a WHERE clause with keys in sorted order.
func (c Criteria) where() (string, []any, error) {
	if len(c) == 0 {
		return "", nil, ErrEmptyCriteria
	}
	keys := make([]string, 0, len(c))
	for k := range c {
		if !searchable[k] {
			return "", nil, fmt.Errorf("%w: %q", ErrUnknownColumn, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conds := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		conds = append(conds, quoteIdent(k)+" = ?")
		args = append(args, c[k])
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// FindOne fetches the first user matching criteria. Returns (nil, nil) if not found.
func (r *UserRepository) FindOne(ctx context.Context, criteria Criteria) (*models.User, error) {
	where, args, err := criteria.where()
	if err != nil {
		return nil, err
	}

	var (
		u     models.User
		token sql.NullString
	)
	err = r.db.QueryRowContext(ctx, selectUserSQL+where+" LIMIT 1", args...).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.AuthKey, &token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	if token.Valid {
		u.AccessToken = &token.String
	}
	return &u, nil
}

// Create inserts a new user, assigns its ID and returns it.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (int64, error) {
	if !u.IsNew() {
		return 0, fmt.Errorf("insert user %q: already persisted with id %d", u.Username, u.ID)
	}

	var token sql.NullString
	if u.AccessToken != nil {
		token = sql.NullString{String: *u.AccessToken, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Username, u.PasswordHash, u.AuthKey, token)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	u.ID = lastID
	return lastID, nil
}

// UpdatePassword stores a new password hash for the user with the given id.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := r.db.ExecContext(ctx, updateUserPasswordSQL, hash, id)
	if err != nil {
		return fmt.Errorf("update password for user %d: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected for user %d: %w", id, err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
