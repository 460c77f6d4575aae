package handlers

import (
	"errors"
	"net/http"

	"user_identity/internal/models"
	"user_identity/internal/service"

	"github.com/gin-gonic/gin"
)

// SignInRequest is the credentials payload for password sign-in.
type SignInRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin"`
}

// SignInResponse carries what a client needs to resume its session later.
type SignInResponse struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"admin"`
	AuthKey  string `json:"authkey" example:"5f0c2a8e-8d1b-4c1e-9a57-1d2f4e6b7c80"`
}

// TokenRequest is the payload for access-token sign-in.
type TokenRequest struct {
	Token string `json:"token" binding:"required"`
	Type  string `json:"type,omitempty"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// @Summary      Sign in with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SignInRequest  true  "Credentials"
// @Success      200   {object}  SignInResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input SignInRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("auth_sign_in_failed", "username", input.Username)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "auth_sign_in_error", err,
			"username", input.Username)
		return
	}

	c.JSON(http.StatusOK, SignInResponse{ID: u.GetID(), Username: u.Username, AuthKey: u.GetAuthKey()})
}

// @Summary      Sign in with an access token
// @Description  Access-token sign-in is not supported and always answers 501.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      TokenRequest  true  "Token"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Failure      501   {object}  map[string]string
// @Router       /auth/token [post]
func (h *Handler) signInByToken(c *gin.Context) {
	var input TokenRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	// token sign-in never yields an identity
	_, err := h.services.FindIdentityByAccessToken(c.Request.Context(), input.Token, input.Type)
	if errors.Is(err, models.ErrNotSupported) {
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "auth_token_error", err)
}

// @Summary      Current identity
// @Description  Resolves the caller from the X-User-ID and X-Auth-Key headers.
// @Tags         auth
// @Produce      json
// @Param        X-User-ID   header    int     true  "User ID"
// @Param        X-Auth-Key  header    string  true  "Auth key"
// @Success      200         {object}  map[string]int64
// @Failure      401         {object}  map[string]string
// @Router       /auth/identity [get]
func (h *Handler) currentIdentity(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": identity.GetID()})
}
