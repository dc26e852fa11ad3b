package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Actor is the already-verified identity handed to the engine by the
// identity provider. The engine never authenticates; it only authorizes
// against the role and ownership it is given here.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

const actorKey = "auth.actor"

// Middleware lifts the upstream identity headers into an Actor. Requests
// without an identity are rejected before reaching any handler.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-User-ID")
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
			return
		}
		role := c.GetHeader("X-User-Role")
		if role == "" {
			role = RoleMember
		}
		c.Set(actorKey, Actor{ID: id, Role: role})
		c.Next()
	}
}

// ActorFrom returns the actor attached by Middleware.
func ActorFrom(c *gin.Context) Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(Actor); ok {
			return a
		}
	}
	return Actor{}
}
