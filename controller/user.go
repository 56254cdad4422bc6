package controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"gotours/database"
	"gotours/middlewares"
	"gotours/models"
	"gotours/utils"
)

type UserHandler struct {
	db    *database.DB
	users *Factory[models.User]
}

func NewUserHandler(db *database.DB) *UserHandler {
	factory := NewFactory[models.User](db.Users())
	// soft-deleted accounts stay invisible to every read
	factory.BaseFilter = models.ActiveFilter(bson.M{})
	return &UserHandler{db: db, users: factory}
}

func (h *UserHandler) GetAllUsers(c *gin.Context) error { return h.users.GetAll(c) }
func (h *UserHandler) GetUser(c *gin.Context) error     { return h.users.GetOne(c) }
func (h *UserHandler) UpdateUser(c *gin.Context) error  { return h.users.UpdateOne(c) }

// DeleteUser deactivates the account; user records are never removed outright.
func (h *UserHandler) DeleteUser(c *gin.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	res, err := h.db.Users().UpdateOne(
		ctx,
		models.ActiveFilter(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"active": false}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.NewAppError("no document found with that id", http.StatusNotFound)
	}

	c.Status(http.StatusNoContent)
	return nil
}

// CreateUser is intentionally disabled; accounts only come from /signup.
func (h *UserHandler) CreateUser(c *gin.Context) error {
	return utils.NewAppError("this route is not defined, please use /signup instead", http.StatusInternalServerError)
}

// GetMe reuses the generic read with the id taken from the session.
func (h *UserHandler) GetMe(c *gin.Context) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.NewAppError("you are not logged in, please log in to get access", http.StatusUnauthorized)
	}
	c.Params = append(c.Params, gin.Param{Key: "id", Value: user.ID.Hex()})
	return h.users.GetOne(c)
}

// UpdateMe lets a user change their own profile data. Only name and email
// pass through; password changes go through /update-password.
func (h *UserHandler) UpdateMe(c *gin.Context) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.NewAppError("you are not logged in, please log in to get access", http.StatusUnauthorized)
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		return utils.NewAppError("invalid request body", http.StatusBadRequest)
	}
	patch := filterObj(body, "name", "email")
	if email, ok := patch["email"].(string); ok {
		patch["email"] = strings.ToLower(email)
	}
	if len(patch) == 0 {
		return utils.NewAppError("nothing to update, only name and email can be changed here", http.StatusBadRequest)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	var updated models.User
	err := h.db.Users().FindOneAndUpdate(
		ctx,
		models.ActiveFilter(bson.M{"_id": user.ID}),
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return err
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"user": updated},
	})
	return nil
}

// DeleteMe soft-deletes: the record stays but disappears from all default
// reads, login included.
func (h *UserHandler) DeleteMe(c *gin.Context) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return utils.NewAppError("you are not logged in, please log in to get access", http.StatusUnauthorized)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	_, err := h.db.Users().UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return err
	}

	c.Status(http.StatusNoContent)
	return nil
}

// filterObj keeps only the allowed keys of a request body.
func filterObj(body map[string]any, allowed ...string) map[string]any {
	out := make(map[string]any)
	for _, key := range allowed {
		if v, ok := body[key]; ok {
			out[key] = v
		}
	}
	return out
}
