package handlers

import (
	"context"
	"net/http"

	"user_identity/internal/models"
	"user_identity/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	authUser *models.User
	authErr  error

	sessionIdentity models.Identity
	sessionErr      error

	tokenErr error

	lastAuthUsername  string
	lastAuthPassword  string
	lastSessionID     int64
	lastSessionKey    string
	lastToken         string
	sessionCallsCount int
}

var _ service.Authorization = (*mockAuth)(nil)

func (m *mockAuth) FindIdentity(context.Context, int64) (models.Identity, error) {
	return nil, nil
}

func (m *mockAuth) FindIdentityByAccessToken(_ context.Context, token, _ string) (models.Identity, error) {
	m.lastToken = token
	return nil, m.tokenErr
}

func (m *mockAuth) FindByID(context.Context, int64) (*models.User, error) {
	return nil, nil
}

func (m *mockAuth) FindByUsername(context.Context, string) (*models.User, error) {
	return nil, nil
}

func (m *mockAuth) ValidatePassword(*models.User, string) (bool, error) {
	return false, nil
}

func (m *mockAuth) SetPassword(*models.User, string) error {
	return nil
}

func (m *mockAuth) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	m.lastAuthUsername = username
	m.lastAuthPassword = password
	return m.authUser, m.authErr
}

func (m *mockAuth) ResolveSession(_ context.Context, id int64, authKey string) (models.Identity, error) {
	m.sessionCallsCount++
	m.lastSessionID = id
	m.lastSessionKey = authKey
	return m.sessionIdentity, m.sessionErr
}

func (m *mockAuth) Register(context.Context, string, string) (*models.User, error) {
	return nil, nil
}

func (m *mockAuth) ChangePassword(context.Context, string, string) error {
	return nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func sessionHeader(id, key string) http.Header {
	h := http.Header{}
	if id != "" {
		h.Set(headerUserID, id)
	}
	if key != "" {
		h.Set(headerAuthKey, key)
	}
	return h
}
