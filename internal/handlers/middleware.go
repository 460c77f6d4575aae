package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"user_identity/internal/models"
	"user_identity/internal/service"

	"github.com/gin-gonic/gin"
)

// Session headers sent by clients that signed in earlier.
const (
	headerUserID  = "X-User-ID"
	headerAuthKey = "X-Auth-Key"

	identityKey = "identity"
)

// sessionMiddleware restores the caller's identity from its id and authkey.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	rawID := c.GetHeader(headerUserID)
	authKey := c.GetHeader(headerAuthKey)
	if rawID == "" || authKey == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing session headers",
		})
		return
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid user id",
		})
		return
	}

	identity, err := h.services.ResolveSession(c.Request.Context(), id, authKey)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": errInvalidCredentials,
			})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "session_resolve_error", err, "user_id", id)
		return
	}

	c.Set(identityKey, identity)
	c.Next()
}

// identityFrom returns the identity stored by sessionMiddleware.
func identityFrom(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

// requestLogger writes one structured line per request.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}
