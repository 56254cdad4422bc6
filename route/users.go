package route

import (
	"github.com/gin-gonic/gin"

	"gotours/middlewares"
	"gotours/models"
	"gotours/utils"
)

func Users(api *gin.RouterGroup, d Deps) {
	users := api.Group("/users")

	users.POST("/signup", utils.Handle(d.Auth.Signup))
	users.POST("/login", utils.Handle(d.Auth.Login))
	users.POST("/logout", utils.Handle(d.Auth.Logout))
	users.POST("/forgot-password", utils.Handle(d.Auth.ForgotPassword))
	users.PATCH("/reset-password/:token", utils.Handle(d.Auth.ResetPassword))

	authed := users.Group("", d.Protect)
	authed.PATCH("/update-password", utils.Handle(d.Auth.UpdatePassword))
	authed.GET("/me", utils.Handle(d.Users.GetMe))
	authed.PATCH("/me", utils.Handle(d.Users.UpdateMe))
	authed.DELETE("/me", utils.Handle(d.Users.DeleteMe))

	admin := authed.Group("", middlewares.RestrictTo(models.RoleAdmin))
	admin.GET("", utils.Handle(d.Users.GetAllUsers))
	admin.POST("", utils.Handle(d.Users.CreateUser))
	admin.GET("/:id", utils.Handle(d.Users.GetUser))
	admin.PATCH("/:id", utils.Handle(d.Users.UpdateUser))
	admin.DELETE("/:id", utils.Handle(d.Users.DeleteUser))
}
