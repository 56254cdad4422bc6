package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"gotours/config"
	"gotours/database"
	"gotours/models"
	"gotours/utils"
)

const ctxUserKey = "currentUser"

// SetCurrentUser attaches the authenticated user to the request context.
func SetCurrentUser(c *gin.Context, user models.User) {
	c.Set(ctxUserKey, user)
}

// CurrentUser returns the user Protect attached to the request.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// Protect is the route guard. Every failure aborts the request before any
// further work happens: a bad signature or an expired token never reaches
// the database, and a token issued before the user's last password change
// is rejected outright.
func Protect(db *database.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			abortWith(c, "you are not logged in, please log in to get access", http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseToken(tokenString, cfg.JWTSecret)
		if err != nil {
			abortWith(c, "invalid or expired token, please log in again", http.StatusUnauthorized)
			return
		}

		userID, err := bson.ObjectIDFromHex(claims.Subject)
		if err != nil {
			abortWith(c, "invalid or expired token, please log in again", http.StatusUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var user models.User
		err = db.Users().FindOne(ctx, models.ActiveFilter(bson.M{"_id": userID})).Decode(&user)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				abortWith(c, "the user belonging to this token no longer exists", http.StatusUnauthorized)
				return
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		if claims.IssuedAt != nil && user.ChangedPasswordAfter(claims.IssuedAt.Time) {
			abortWith(c, "password was changed recently, please log in again", http.StatusUnauthorized)
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header, falling
// back to the session cookie for browser clients.
func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	if cookie, err := c.Request.Cookie("jwt"); err == nil {
		return cookie.Value
	}
	return ""
}

func abortWith(c *gin.Context, message string, code int) {
	_ = c.Error(utils.NewAppError(message, code))
	c.Abort()
}
