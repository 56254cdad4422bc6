package route

import (
	"github.com/gin-gonic/gin"

	"gotours/middlewares"
	"gotours/models"
	"gotours/utils"
)

func Tours(api *gin.RouterGroup, d Deps) {
	tours := api.Group("/tours")

	tours.GET("", utils.Handle(d.Tours.GetAllTours))
	tours.GET("/:id", utils.Handle(d.Tours.GetTour))
	tours.GET("/:id/cover", utils.Handle(d.Tours.GetCoverURL))

	staff := tours.Group("", d.Protect, middlewares.RestrictTo(models.RoleAdmin, models.RoleLeadGuide))
	staff.POST("", utils.Handle(d.Tours.CreateTour))
	staff.PATCH("/:id", utils.Handle(d.Tours.UpdateTour))
	staff.DELETE("/:id", utils.Handle(d.Tours.DeleteTour))
	staff.POST("/:id/cover", utils.Handle(d.Tours.UploadCover))

	// nested resource: reviews of one tour
	nested := tours.Group("/:id/reviews", d.Protect)
	nested.GET("", utils.Handle(d.Reviews.GetAllReviews))
	nested.POST("", middlewares.RestrictTo(models.RoleUser), utils.Handle(d.Reviews.CreateReview))
}
