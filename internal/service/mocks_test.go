package service

import (
	"context"
	"errors"

	"user_identity/internal/models"
	"user_identity/internal/repository"
)

// mockUsers is a lightweight in-test mock for repository.Users.
type mockUsers struct {
	FindOneFn        func(criteria repository.Criteria) (*models.User, error)
	CreateFn         func(u *models.User) (int64, error)
	UpdatePasswordFn func(id int64, hash string) error

	findCalls   []repository.Criteria
	createCalls []*models.User
	updateCalls []string
}

func (m *mockUsers) FindOne(_ context.Context, criteria repository.Criteria) (*models.User, error) {
	m.findCalls = append(m.findCalls, criteria)
	return m.FindOneFn(criteria)
}

func (m *mockUsers) Create(_ context.Context, u *models.User) (int64, error) {
	m.createCalls = append(m.createCalls, u)
	return m.CreateFn(u)
}

func (m *mockUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	m.updateCalls = append(m.updateCalls, hash)
	return m.UpdatePasswordFn(id, hash)
}

// stubHasher mimics a security component whose output is fully controlled by the test.
type stubHasher struct {
	hash      string
	hashErr   error
	verifyOK  bool
	verifyErr error

	lastVerifyPassword string
	lastVerifyHash     string
}

var errInvalidHash = errors.New("hash is invalid")

func (h *stubHasher) Hash(string) (string, error) {
	return h.hash, h.hashErr
}

func (h *stubHasher) Verify(password, hash string) (bool, error) {
	h.lastVerifyPassword = password
	h.lastVerifyHash = hash
	return h.verifyOK, h.verifyErr
}

// mockSchema records repository.Schema calls.
type mockSchema struct {
	createErr error
	dropErr   error
	insertErr error

	created      string
	columns      []repository.Column
	dropped      string
	insertTable  string
	insertFields []repository.Field
}

func (m *mockSchema) CreateTable(_ context.Context, name string, columns []repository.Column) error {
	m.created = name
	m.columns = columns
	return m.createErr
}

func (m *mockSchema) DropTable(_ context.Context, name string) error {
	m.dropped = name
	return m.dropErr
}

func (m *mockSchema) Insert(_ context.Context, table string, fields []repository.Field) (int64, error) {
	m.insertTable = table
	m.insertFields = fields
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	return 1, nil
}
