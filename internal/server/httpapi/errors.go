package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	msgRejected           = "Could not validate credentials"
	msgInvalidCredentials = "Incorrect email or password"
	msgForbidden          = "Unauthorized access"
	msgDuplicateEmail     = "Email already registered"
	msgNotFound           = "Not found"
	msgInvalidInput       = "Invalid input"
	msgInternal           = "Internal server error"
)

// writeError maps service errors to a status and a {"detail": ...} body.
// Rejections never reveal why the token was refused.
func (h *handler) writeError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.Is(err, common.ErrRejected):
		c.Header("WWW-Authenticate", common.BearerScheme)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": msgRejected})
	case errors.Is(err, common.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", common.BearerScheme)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": msgInvalidCredentials})
	case errors.Is(err, common.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": msgForbidden})
	case errors.Is(err, common.ErrDuplicateEmail):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": msgDuplicateEmail})
	case errors.Is(err, common.ErrInvalidInput):
		if errors.As(err, &verrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": verrs})
			return
		}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": msgInvalidInput})
	case errors.Is(err, common.ErrorNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": msgNotFound})
	default:
		h.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": msgInternal})
	}
}
