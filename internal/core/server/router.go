package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mdw "gin-user-rbac/internal/transport/http/middleware"
)

// NewRouter 基础引擎：RequestID → Recovery(zap) → CORS，业务中间件由调用方追加
func NewRouter(l *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(mdw.RequestID())
	r.Use(mdw.Recovery(l))
	r.Use(cors.New(corsConfig()))
	return r
}

func corsConfig() cors.Config {
	c := cors.DefaultConfig()
	c.AllowAllOrigins = true
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", mdw.KeyRequestID)
	c.ExposeHeaders = []string{mdw.KeyRequestID}
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	return c
}

// Run 启动并阻塞到 ctx 结束，然后优雅关闭
func Run(ctx context.Context, srv *http.Server, l *zap.Logger, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		l.Info("http starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	l.Info("http stopped gracefully")
	return nil
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       rt,
		ReadHeaderTimeout: rt,
		WriteTimeout:      wt,
		IdleTimeout:       it,
		MaxHeaderBytes:    1 << 20, // 1MB
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
