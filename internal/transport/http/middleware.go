package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/booking"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/service"
)

const requestContextKey = "requestContext"

// AuthMiddleware извлекает Bearer access-токен и кладёт RequestContext
// в контекст gin; без валидного токена запрос обрывается 401.
func AuthMiddleware(identity *service.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		rc, err := identity.ParseAccessToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(requestContextKey, rc)
		c.Next()
	}
}

// AdminOnly пропускает только админов; вешается после AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := mustRequestContext(c)
		if !rc.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func mustRequestContext(c *gin.Context) booking.RequestContext {
	v, _ := c.Get(requestContextKey)
	rc, _ := v.(booking.RequestContext)
	return rc
}
