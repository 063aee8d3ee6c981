package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Dakotapog/D20-solutions/internal/config"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.JSON(200, gin.H{"pong": true}) })
	return r
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := newEngine(RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))

	// 透传既有请求ID
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-Id", "given-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "given-id", w.Header().Get("X-Request-Id"))
}

func TestCORSWildcardAndPreflight(t *testing.T) {
	cfg := config.Load()
	r := newEngine(CORS(cfg))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	// 预检请求直接 204 短路
	req = httptest.NewRequest("OPTIONS", "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 204, w.Code)
}

func TestCORSAllowList(t *testing.T) {
	cfg := config.Load()
	cfg.CORS.AllowedOrigins = []string{"https://app.example.com"}
	r := newEngine(CORS(cfg))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	cfg := config.Load()
	r := newEngine(SecurityHeaders(cfg))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	require.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	// 纯 HTTP 请求不应带 HSTS
	require.Empty(t, w.Header().Get("Strict-Transport-Security"))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Contains(t, w.Header().Get("Strict-Transport-Security"), "max-age=")
}
