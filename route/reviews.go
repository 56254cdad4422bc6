package route

import (
	"github.com/gin-gonic/gin"

	"gotours/middlewares"
	"gotours/models"
	"gotours/utils"
)

func Reviews(api *gin.RouterGroup, d Deps) {
	reviews := api.Group("/reviews", d.Protect)

	reviews.GET("", utils.Handle(d.Reviews.GetAllReviews))
	reviews.POST("", middlewares.RestrictTo(models.RoleUser), utils.Handle(d.Reviews.CreateReview))

	reviews.GET("/:id", utils.Handle(d.Reviews.GetReview))
	reviews.PATCH("/:id", middlewares.RestrictTo(models.RoleUser, models.RoleAdmin), utils.Handle(d.Reviews.UpdateReview))
	reviews.DELETE("/:id", middlewares.RestrictTo(models.RoleUser, models.RoleAdmin), utils.Handle(d.Reviews.DeleteReview))
}
