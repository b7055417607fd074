package middleware

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docgen/backend/internal/infrastructure/auth"
)

const (
	// ActorKey is the gin context key the resolved actor is stored under
	ActorKey = "actor"
	// userIDHeader carries the authenticated user id, set by the gateway
	userIDHeader = "X-User-ID"
	// scopesHeader carries the actor's data scopes as a JSON object of
	// entity type to scope level, e.g. {"Contact":"OWN","Template":"ALL"}
	scopesHeader = "X-Data-Scopes"
)

// Actor resolves the request actor from gateway headers and stores it in the
// request context. Requests without a user id run as an anonymous actor with
// no ownership; scope defaults still apply.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := &auth.Actor{}

		if raw := c.GetHeader(userIDHeader); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				actor.UserID = id
			}
		}

		if raw := c.GetHeader(scopesHeader); raw != "" {
			var levels map[string]string
			if err := json.Unmarshal([]byte(raw), &levels); err == nil {
				actor.Scopes = make(map[string]auth.ScopeLevel, len(levels))
				for entityType, level := range levels {
					actor.Scopes[entityType] = auth.ParseScopeLevel(level)
				}
			}
		}

		c.Set(ActorKey, actor)
		c.Next()
	}
}

// GetActor returns the actor resolved for this request
func GetActor(c *gin.Context) *auth.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(*auth.Actor); ok {
			return actor
		}
	}
	return &auth.Actor{}
}
