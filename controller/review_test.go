package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"gotours/middlewares"
	"gotours/models"
	"gotours/utils"
)

func reviewTestContext(t *testing.T, tourParam string, user *models.User) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/api/v1/reviews", nil)
	if tourParam != "" {
		c.Params = append(c.Params, gin.Param{Key: "id", Value: tourParam})
	}
	if user != nil {
		middlewares.SetCurrentUser(c, *user)
	}
	return c
}

func TestSetTourUserIDsFromNestedRoute(t *testing.T) {
	tourID := bson.NewObjectID()
	userID := bson.NewObjectID()
	c := reviewTestContext(t, tourID.Hex(), &models.User{ID: userID, Role: models.RoleUser})

	h := &ReviewHandler{}
	review := models.Review{Review: "great tour", Rating: 5}
	require.NoError(t, h.setTourUserIDs(c, &review))

	assert.Equal(t, tourID, review.Tour)
	assert.Equal(t, userID, review.User)
	assert.False(t, review.CreatedAt.IsZero())
}

func TestSetTourUserIDsBodyCannotOverrideAuthor(t *testing.T) {
	tourID := bson.NewObjectID()
	userID := bson.NewObjectID()
	c := reviewTestContext(t, tourID.Hex(), &models.User{ID: userID})

	h := &ReviewHandler{}
	review := models.Review{User: bson.NewObjectID()} // forged author in body
	require.NoError(t, h.setTourUserIDs(c, &review))

	assert.Equal(t, userID, review.User)
}

func TestSetTourUserIDsInvalidTourID(t *testing.T) {
	c := reviewTestContext(t, "not-an-id", &models.User{ID: bson.NewObjectID()})

	h := &ReviewHandler{}
	err := h.setTourUserIDs(c, &models.Review{})
	require.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestSetTourUserIDsMissingTour(t *testing.T) {
	c := reviewTestContext(t, "", &models.User{ID: bson.NewObjectID()})

	h := &ReviewHandler{}
	err := h.setTourUserIDs(c, &models.Review{})
	require.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestSetTourUserIDsRequiresLogin(t *testing.T) {
	c := reviewTestContext(t, bson.NewObjectID().Hex(), nil)

	h := &ReviewHandler{}
	err := h.setTourUserIDs(c, &models.Review{})
	require.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
}

func TestKeepOwnershipPinsTourAndAuthor(t *testing.T) {
	tourID := bson.NewObjectID()
	userID := bson.NewObjectID()
	c := reviewTestContext(t, "", &models.User{ID: userID})

	stored := models.Review{Review: "solid", Rating: 4, Tour: tourID, User: userID}
	// body tries to move the review to another tour and author
	merged := stored
	merged.Tour = bson.NewObjectID()
	merged.User = bson.NewObjectID()
	merged.Rating = 2

	h := &ReviewHandler{}
	require.NoError(t, h.keepOwnership(c, &stored, &merged))

	assert.Equal(t, tourID, merged.Tour)
	assert.Equal(t, userID, merged.User)
	assert.Equal(t, 2.0, merged.Rating)
}

func TestReviewRequiresTourAndUser(t *testing.T) {
	review := models.Review{Review: "great tour", Rating: 5}
	require.Error(t, validate.Struct(&review))

	review.Tour = bson.NewObjectID()
	require.Error(t, validate.Struct(&review))

	review.User = bson.NewObjectID()
	require.NoError(t, validate.Struct(&review))
}
