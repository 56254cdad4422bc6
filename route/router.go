package route

import (
	"github.com/gin-gonic/gin"

	"gotours/controller"
)

// Deps carries the handlers and shared middleware the routers wire up.
type Deps struct {
	Auth      *controller.AuthHandler
	Users     *controller.UserHandler
	Tours     *controller.TourHandler
	Reviews   *controller.ReviewHandler
	Protect   gin.HandlerFunc
	RateLimit gin.HandlerFunc
	BodyLimit gin.HandlerFunc
}

// Register mounts every resource router under /api/v1.
func Register(router *gin.Engine, d Deps) {
	api := router.Group("/api/v1")
	if d.RateLimit != nil {
		api.Use(d.RateLimit)
	}
	if d.BodyLimit != nil {
		api.Use(d.BodyLimit)
	}

	Users(api, d)
	Tours(api, d)
	Reviews(api, d)
}
