package utils

import "github.com/gin-gonic/gin"

// Handle adapts a fallible handler to gin. Controllers return errors
// instead of writing error responses themselves; every failure ends up in
// the single error-formatting middleware so responses stay uniform.
func Handle(fn func(c *gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := fn(c); err != nil {
			_ = c.Error(err)
			c.Abort()
		}
	}
}
