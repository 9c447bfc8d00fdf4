package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/auth"
	"github.com/enerlink/enerlink/internal/models"
)

// ActorKey is the gin context key the authenticated actor is stored under.
const ActorKey = "actor"

// TokenValidator validates a session token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// AuthMiddleware returns Gin middleware that authenticates requests via a
// Bearer session token and stores the actor context for handlers.
func AuthMiddleware(tokens TokenValidator, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractBearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization header")
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			log.WithFields(logrus.Fields{
				"client_ip":  c.ClientIP(),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"request_id": c.GetString(RequestIDKey),
			}).Warn("authentication failed: invalid token")
			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")

			return
		}

		c.Set(ActorKey, claims.Actor())
		c.Next()
	}
}

// ExtractBearerToken extracts the session token from the Authorization header.
func ExtractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}

	return strings.TrimPrefix(header, "Bearer ")
}

// Actor returns the authenticated actor stored by AuthMiddleware.
func Actor(c *gin.Context) (models.ActorContext, bool) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return models.ActorContext{}, false
	}

	actor, ok := v.(models.ActorContext)

	return actor, ok
}
