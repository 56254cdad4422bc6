package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"gotours/database"
	"gotours/middlewares"
	"gotours/models"
	"gotours/utils"
)

type ReviewHandler struct {
	db      *database.DB
	reviews *Factory[models.Review]
}

func NewReviewHandler(db *database.DB) *ReviewHandler {
	h := &ReviewHandler{db: db}

	factory := NewFactory[models.Review](db.Reviews())
	// nested route /tours/:id/reviews; the wildcard name is shared with
	// the tour routes
	factory.ParentParam = "id"
	factory.ParentField = "tour"
	factory.BeforeCreate = h.setTourUserIDs
	factory.BeforeUpdate = h.keepOwnership
	// explicit orchestration instead of a persistence hook: every write
	// recomputes the owning tour's rating aggregate
	factory.AfterWrite = func(ctx context.Context, review *models.Review) error {
		return h.CalcAverageRatings(ctx, review.Tour)
	}
	h.reviews = factory
	return h
}

func (h *ReviewHandler) GetAllReviews(c *gin.Context) error { return h.reviews.GetAll(c) }
func (h *ReviewHandler) GetReview(c *gin.Context) error     { return h.reviews.GetOne(c) }
func (h *ReviewHandler) CreateReview(c *gin.Context) error  { return h.reviews.CreateOne(c) }
func (h *ReviewHandler) UpdateReview(c *gin.Context) error  { return h.reviews.UpdateOne(c) }
func (h *ReviewHandler) DeleteReview(c *gin.Context) error  { return h.reviews.DeleteOne(c) }

// setTourUserIDs fills the owning tour from the nested route and the
// author from the session; the body cannot override the author.
func (h *ReviewHandler) setTourUserIDs(c *gin.Context, review *models.Review) error {
	if raw := c.Param("id"); raw != "" {
		tourID, err := bson.ObjectIDFromHex(raw)
		if err != nil {
			return utils.NewAppError("invalid id", http.StatusBadRequest)
		}
		review.Tour = tourID
	}
	if review.Tour.IsZero() {
		return utils.NewAppError("review must belong to a tour", http.StatusBadRequest)
	}

	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.NewAppError("you are not logged in, please log in to get access", http.StatusUnauthorized)
	}
	review.User = user.ID
	review.CreatedAt = time.Now()
	return nil
}

// keepOwnership pins a review to its original tour and author; updates
// may only change the text and the rating.
func (h *ReviewHandler) keepOwnership(c *gin.Context, stored, merged *models.Review) error {
	merged.Tour = stored.Tour
	merged.User = stored.User
	return nil
}

// CalcAverageRatings recomputes the rating count and mean over all
// reviews of a tour and writes them back. The aggregate is rebuilt from
// scratch each time, so concurrent writers converge on the correct value
// once every recomputation has run.
func (h *ReviewHandler) CalcAverageRatings(ctx context.Context, tourID bson.ObjectID) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"tour": tourID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":       "$tour",
			"nRating":   bson.M{"$sum": 1},
			"avgRating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := h.db.Reviews().Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var stats []struct {
		NRating   int     `bson:"nRating"`
		AvgRating float64 `bson:"avgRating"`
	}
	if err := cursor.All(ctx, &stats); err != nil {
		return err
	}

	average := float64(models.DefaultRatingsAverage)
	quantity := models.DefaultRatingsQuantity
	if len(stats) > 0 {
		average = stats[0].AvgRating
		quantity = stats[0].NRating
	}

	_, err = h.db.Tours().UpdateByID(ctx, tourID, bson.M{"$set": bson.M{
		"ratingsAverage":  average,
		"ratingsQuantity": quantity,
	}})
	return err
}
