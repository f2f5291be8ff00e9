package handlers

import (
	"project-tracker/internal/middleware"
	"project-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

// ActorKey is the gin context key the auth middleware stores the actor under.
const ActorKey = middleware.ActorKey

// GetActor pulls the authenticated actor from the request context. Every
// service call receives it explicitly; there is no ambient current-user
// state below the handler layer.
func GetActor(c *gin.Context) (services.Actor, bool) {
	value, exists := c.Get(ActorKey)
	if !exists {
		return services.Actor{}, false
	}
	actor, ok := value.(services.Actor)
	return actor, ok
}
