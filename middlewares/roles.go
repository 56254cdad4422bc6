package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gotours/models"
	"gotours/utils"
)

// RestrictTo gates a route to the given roles. It assumes Protect already
// ran and attached the user.
func RestrictTo(roles ...models.Role) gin.HandlerFunc {
	allowed := make([]string, len(roles))
	for i, r := range roles {
		allowed[i] = string(r)
	}
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWith(c, "you are not logged in, please log in to get access", http.StatusUnauthorized)
			return
		}
		if !utils.Authorize(string(user.Role), allowed...) {
			abortWith(c, "you do not have permission to perform this action", http.StatusForbidden)
			return
		}
		c.Next()
	}
}
