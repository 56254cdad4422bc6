package controller

import (
	"crypto/tls"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestScheme(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		forwarded string
		tls       bool
		want      string
	}{
		{"plain http", "", false, "http"},
		{"direct tls", "", true, "https"},
		{"behind tls-terminating proxy", "https", false, "https"},
		{"forwarded header wins over tls state", "http", true, "http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("POST", "/api/v1/users/forgot-password", nil)
			if tt.forwarded != "" {
				c.Request.Header.Set("X-Forwarded-Proto", tt.forwarded)
			}
			if tt.tls {
				c.Request.TLS = &tls.ConnectionState{}
			}
			assert.Equal(t, tt.want, requestScheme(c))
		})
	}
}
