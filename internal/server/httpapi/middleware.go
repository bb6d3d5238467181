package httpapi

import (
	"time"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// requireAuth authenticates the bearer token and stores the identity both in
// the gin context and in the request context.
func (h *handler) requireAuth(c *gin.Context) {
	ctx := c.Request.Context()

	identity, err := h.auth.Authenticate(ctx, c.GetHeader(common.AuthorizationHeaderName))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Set(identityKey, identity)
	c.Request = c.Request.WithContext(auth.WithIdentity(ctx, identity))
	c.Next()
}

// caller returns the identity attached by requireAuth, or nil.
func caller(c *gin.Context) *auth.Identity {
	if id, ok := auth.IdentityFromContext(c.Request.Context()); ok {
		return id
	}
	return nil
}

func (h *handler) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()

	h.logger.Info(c.Request.Context(), "http request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}
