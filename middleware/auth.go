package middleware

import (
	"net/http"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/handboekai/handboek-api/common/ctxkey"
)

// TokenAuth requires a bearer token and records it as the owner key. The
// token is an opaque workspace identifier: every handbook query is scoped by
// it, so two tokens never see each other's data.
func TokenAuth() func(c *gin.Context) {
	return func(c *gin.Context) {
		key := c.Request.Header.Get("Authorization")
		key = strings.TrimSpace(strings.TrimPrefix(key, "Bearer "))
		if key == "" {
			AbortWithError(c, http.StatusUnauthorized, errors.New("missing bearer token"))
			return
		}
		if len(key) < 16 || len(key) > 191 {
			AbortWithError(c, http.StatusUnauthorized, errors.New("invalid bearer token"))
			return
		}
		c.Set(ctxkey.OwnerKey, key)
		c.Next()
	}
}
