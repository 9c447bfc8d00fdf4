package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enerlink/enerlink/internal/models"
)

// roleRank orders roles by privilege. Higher rank implies every lower one.
var roleRank = map[string]int{
	models.RoleAgent:   1,
	models.RoleManager: 2,
	models.RoleAdmin:   3,
}

// RequireRole returns Gin middleware that rejects requests whose actor has
// less privilege than the given role. It must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	required := roleRank[role]

	return func(c *gin.Context) {
		actor, ok := Actor(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}

		if roleRank[actor.Role] < required {
			respondError(c, http.StatusForbidden, "forbidden", "insufficient role")
			return
		}

		c.Next()
	}
}
