package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRouter_CORSAndRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(zap.NewNop())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNewRouter_RecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(zap.NewNop())
	r.GET("/boom", func(*gin.Context) { panic("x") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	srv := BuildServer("127.0.0.1:0", http.NotFoundHandler(), time.Second, time.Second, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, srv, zap.NewNop(), time.Second) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestAddr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", Addr("0.0.0.0", 8080))
}
