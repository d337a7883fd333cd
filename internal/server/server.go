// Package server exposes the liveness and metrics endpoints.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"traderjoe/internal/logx"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const (
	HealthText      = "Bot is running!"
	shutdownTimeout = 5 * time.Second
)

// Handler serves "/" for liveness probes and "/metrics" when metrics is not nil.
func Handler(metrics http.Handler) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), logRequests)
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, HealthText)
	})

	if metrics != nil {
		engine.GET("/metrics", gin.WrapH(metrics))
	}

	return engine
}

func logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	logx.Get("server").
		WithField("status", c.Writer.Status()).
		WithField("elapsed", time.Since(start)).
		Debugf("%s %s", c.Request.Method, c.Request.URL.Path)
}

// Run listens on the port until ctx is done.
func Run(ctx context.Context, port int, handler http.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() { errs <- srv.ListenAndServe() }()
	logx.Get("server").Infof("listening on %s", srv.Addr)

	select {
	case err := <-errs:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}

	return nil
}
