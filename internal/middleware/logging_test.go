package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestRequestLoggerAssignsID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&buf)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("missing X-Request-ID")
	}
	line := buf.String()
	for _, want := range []string{id, `"path":"/ping"`, `"status":200`, `"method":"GET"`} {
		if !strings.Contains(line, want) {
			t.Errorf("log %s lacks %s", line, want)
		}
	}
}

func TestRecoverPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	r := gin.New()
	r.Use(RequestLogger(log), RecoverPanic(log))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", w.Code)
	}
	if !strings.Contains(buf.String(), "kaboom") {
		t.Errorf("panic not logged: %s", buf.String())
	}
}
