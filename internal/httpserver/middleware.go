package httpserver

import (
	"context"
	"net/http"
	"strings"

	"flowershop/internal/domain"
	"github.com/gin-gonic/gin"
)

const userKey = "currentUser"

type userLookup interface {
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
}

// identifyUser resolves an optional bearer token into the current user.
// Requests without a (valid) token continue anonymously; the role gates
// below decide whether that is acceptable.
func identifyUser(users userLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}
		u, err := users.LookupByToken(c.Request.Context(), token)
		if err == nil && u != nil {
			c.Set(userKey, u)
		}
		c.Next()
	}
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "로그인이 필요합니다"})
			return
		}
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u == nil || !u.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "관리자 권한이 필요합니다"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
