package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"gotours/models"
)

func roleRouter(user *models.User, allowed ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(true))
	r.GET("/guarded",
		func(c *gin.Context) {
			if user != nil {
				c.Set(ctxUserKey, *user)
			}
			c.Next()
		},
		RestrictTo(allowed...),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "success"})
		},
	)
	return r
}

func TestRestrictTo(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.User
		allowed  []models.Role
		wantCode int
	}{
		{"allowed role passes", &models.User{Role: models.RoleAdmin}, []models.Role{models.RoleAdmin, models.RoleLeadGuide}, http.StatusOK},
		{"forbidden role rejected", &models.User{Role: models.RoleUser}, []models.Role{models.RoleAdmin}, http.StatusForbidden},
		{"guide not in admin set", &models.User{Role: models.RoleGuide}, []models.Role{models.RoleAdmin, models.RoleLeadGuide}, http.StatusForbidden},
		{"no user on context", nil, []models.Role{models.RoleAdmin}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/guarded", nil)
			roleRouter(tt.user, tt.allowed...).ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusForbidden {
				var body map[string]any
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				assert.Equal(t, "fail", body["status"])
			}
		})
	}
}
