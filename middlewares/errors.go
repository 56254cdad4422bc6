package middlewares

import (
	"errors"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"gotours/utils"
)

// ErrorHandler is the single terminal error formatter. Operational errors
// (utils.AppError) keep their status and message; everything else is a
// 500 whose details stay out of the response in production.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		var appErr *utils.AppError
		if errors.As(last.Err, &appErr) {
			if production {
				c.JSON(appErr.Code, gin.H{
					"status":  appErr.Status(),
					"message": appErr.Message,
				})
				return
			}
			c.JSON(appErr.Code, gin.H{
				"err":     last.Err.Error(),
				"message": appErr.Message,
				"stack":   string(debug.Stack()),
			})
			return
		}

		log.Println("unexpected error:", last.Err)
		if production {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "something went very wrong",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"err":     last.Err.Error(),
			"message": last.Err.Error(),
			"stack":   string(debug.Stack()),
		})
	}
}

// NotFound is the catch-all for unmatched routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		abortWith(c, "can't find "+c.Request.URL.Path+" on this server", http.StatusNotFound)
	}
}
