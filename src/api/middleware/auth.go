package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kitbid/KitBidBackend/src/pkg/errcode"
	"github.com/kitbid/KitBidBackend/src/pkg/xhttp"
)

// Identity headers are set by the API gateway after it verifies the caller's
// token; the backend trusts them as-is.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"

	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

// Identity copies the gateway identity headers into the gin context. It never
// rejects: anonymous reads are allowed.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader(HeaderUserID); userID != "" {
			c.Set(CtxUserID, userID)
		}
		if role := c.GetHeader(HeaderUserRole); role != "" {
			c.Set(CtxUserRole, role)
		}
		c.Next()
	}
}

// MustLogin aborts with 401 when no identity was forwarded.
func MustLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserID) == "" {
			xhttp.Error(c, errcode.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's id, empty for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
