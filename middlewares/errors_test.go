package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotours/utils"
)

func newTestRouter(production bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(production))
	r.GET("/missing", utils.Handle(func(c *gin.Context) error {
		return utils.NewAppError("no document found with that id", http.StatusNotFound)
	}))
	r.GET("/bug", utils.Handle(func(c *gin.Context) error {
		return errors.New("nil pointer somewhere")
	}))
	r.GET("/ok", utils.Handle(func(c *gin.Context) error {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
		return nil
	}))
	r.NoRoute(NotFound())
	return r
}

func doRequest(r *gin.Engine, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestOperationalErrorInProduction(t *testing.T) {
	w, body := doRequest(newTestRouter(true), "GET", "/missing")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "no document found with that id", body["message"])
	assert.NotContains(t, body, "stack")
}

func TestOperationalErrorInDevelopment(t *testing.T) {
	w, body := doRequest(newTestRouter(false), "GET", "/missing")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, body, "stack")
	assert.Equal(t, "no document found with that id", body["message"])
}

func TestUnexpectedErrorIsHiddenInProduction(t *testing.T) {
	w, body := doRequest(newTestRouter(true), "GET", "/bug")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "something went very wrong", body["message"])
	assert.NotContains(t, body, "stack")
}

func TestUnexpectedErrorIsVerboseInDevelopment(t *testing.T) {
	w, body := doRequest(newTestRouter(false), "GET", "/bug")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "nil pointer somewhere", body["message"])
	assert.Contains(t, body, "stack")
}

func TestSuccessPassesThrough(t *testing.T) {
	w, body := doRequest(newTestRouter(true), "GET", "/ok")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", body["status"])
}

func TestUnmatchedRouteIs404(t *testing.T) {
	w, body := doRequest(newTestRouter(true), "GET", "/api/v1/nope")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "fail", body["status"])
	assert.Contains(t, body["message"], "/api/v1/nope")
}
