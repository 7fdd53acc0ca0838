package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mireo/fitvault/internal/pkg/errcode"
	"github.com/mireo/fitvault/internal/pkg/jwt"
	"github.com/mireo/fitvault/internal/pkg/response"
)

// ContextUserIDKey holds the authenticated user id on the gin context.
const ContextUserIDKey = "user_id"

func abortUnauthorized(c *gin.Context, msg string) {
	response.Error(c, errcode.ErrUnauthorized, msg)
	c.Abort()
}

// bearerToken extracts the token from an Authorization header, or ""
// when the header is absent or not a bearer scheme.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		claims, err := jwt.ParseToken(token, secret)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
