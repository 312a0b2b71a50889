package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestIDGeneratedWhenMissingOrOversized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	for _, header := range []string{"", strings.Repeat("a", 200)} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if header != "" {
			req.Header.Set("X-Request-Id", header)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if _, err := uuid.Parse(resp.Body.String()); err != nil {
			t.Fatalf("expected generated uuid, got %q", resp.Body.String())
		}
		if resp.Header().Get("X-Request-Id") != resp.Body.String() {
			t.Fatalf("header and context ids differ")
		}
	}
}
