package migrations

import (
	"context"
	"database/sql"
	"testing"

	"user_identity/internal/crypto"
	"user_identity/internal/models"
	"user_identity/internal/repository"
	"user_identity/internal/repository/db"
	"user_identity/internal/service"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupRunner(t *testing.T) (*Runner, *sql.DB, crypto.PasswordHasher) {
	t.Helper()

	conn, err := db.InitDB(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	hasher := crypto.NewBcryptHasher(bcrypt.MinCost)
	r, err := NewRunner(conn, hasher, nil)
	require.NoError(t, err)
	return r, conn, hasher
}

func TestRunner_UpSeedsAdmin(t *testing.T) {
	ctx := context.Background()
	r, conn, hasher := setupRunner(t)

	require.NoError(t, r.Up(ctx))

	v, err := r.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, CreateUserTableVersion, v)

	svc := service.NewIdentityService(repository.NewUserRepository(conn), hasher)

	admin, err := svc.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, int64(1), admin.GetID())
	assert.NotEmpty(t, admin.GetAuthKey())
	assert.NoError(t, admin.Validate())

	ok, err := svc.ValidatePassword(admin, "admin")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.ValidatePassword(admin, "not admin")
	require.NoError(t, err)
	assert.False(t, ok)

	byID, err := svc.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, admin.Username, byID.Username)
	assert.Equal(t, admin.PasswordHash, byID.PasswordHash)
	assert.Equal(t, admin.AuthKey, byID.AuthKey)
	assert.Nil(t, byID.AccessToken)
}

func TestRunner_UpIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r, conn, _ := setupRunner(t)

	require.NoError(t, r.Up(ctx))
	require.NoError(t, r.Up(ctx))

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM "user"`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestRunner_TableLayout(t *testing.T) {
	ctx := context.Background()
	r, conn, _ := setupRunner(t)
	require.NoError(t, r.Up(ctx))

	rows, err := conn.Query(`PRAGMA table_info("user")`)
	require.NoError(t, err)
	defer rows.Close()

	type col struct {
		name    string
		typ     string
		notNull bool
		pk      bool
	}
	var got []col
	for rows.Next() {
		var (
			cid     int
			c       col
			notNull int
			dflt    sql.NullString
			pk      int
		)
		require.NoError(t, rows.Scan(&cid, &c.name, &c.typ, &notNull, &dflt, &pk))
		c.notNull = notNull == 1
		c.pk = pk > 0
		got = append(got, c)
	}
	require.NoError(t, rows.Err())

	want := []col{
		{name: "id", typ: "INTEGER", pk: true},
		{name: "username", typ: "VARCHAR(24)", notNull: true},
		{name: "password", typ: "VARCHAR(128)", notNull: true},
		{name: "authkey", typ: "VARCHAR(255)", notNull: true},
		{name: "accessToken", typ: "VARCHAR(255)"},
	}
	assert.Equal(t, want, got)
}

func TestRunner_NotNullEnforced(t *testing.T) {
	ctx := context.Background()
	r, conn, _ := setupRunner(t)
	require.NoError(t, r.Up(ctx))

	schema := repository.NewSchemaSQLite(conn)
	_, err := schema.Insert(ctx, models.UserTable, []repository.Field{
		{Column: models.ColumnUsername, Value: "nopass"},
	})
	assert.Error(t, err)
}

func TestRunner_DownDropsTable(t *testing.T) {
	ctx := context.Background()
	r, conn, hasher := setupRunner(t)

	require.NoError(t, r.Up(ctx))
	require.NoError(t, r.Down(ctx))

	v, err := r.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	// lookups against a dropped table are provider failures, not "not found"
	svc := service.NewIdentityService(repository.NewUserRepository(conn), hasher)
	u, err := svc.FindByUsername(ctx, "admin")
	assert.Error(t, err)
	assert.Nil(t, u)
}

func TestRunner_ReprovisionReseedsOnlyAdmin(t *testing.T) {
	ctx := context.Background()
	r, conn, hasher := setupRunner(t)
	svc := service.NewIdentityService(repository.NewUserRepository(conn), hasher)

	require.NoError(t, r.Up(ctx))
	_, err := svc.Register(ctx, "alice", "s3cr3t")
	require.NoError(t, err)

	require.NoError(t, r.Down(ctx))
	require.NoError(t, r.Up(ctx))

	alice, err := svc.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, alice)

	admin, err := svc.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.NotNil(t, admin)
}

func TestDeprovision_MissingTable(t *testing.T) {
	_, conn, hasher := setupRunner(t)

	p := service.NewProvisioner(repository.NewSchemaSQLite(conn), hasher)
	assert.Error(t, p.Deprovision(context.Background()))
}

func TestRunner_Status(t *testing.T) {
	ctx := context.Background()
	r, _, _ := setupRunner(t)

	st, err := r.Status(ctx)
	require.NoError(t, err)
	require.Len(t, st, 1)
	assert.Equal(t, goose.StatePending, st[0].State)

	require.NoError(t, r.Up(ctx))

	st, err = r.Status(ctx)
	require.NoError(t, err)
	require.Len(t, st, 1)
	assert.Equal(t, goose.StateApplied, st[0].State)
	assert.Equal(t, CreateUserTableVersion, st[0].Source.Version)
}
