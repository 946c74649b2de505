package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// Server wraps the HTTP server with signal-driven graceful shutdown.
type Server struct {
	http *http.Server
}

func New(router *gin.Engine, port string) *Server {
	return &Server{
		http: &http.Server{
			Addr:    ":" + port,
			Handler: router,
		},
	}
}

// Run starts the server and blocks until SIGINT/SIGTERM or a listen failure,
// then drains in-flight requests for up to five seconds.
func (s *Server) Run() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
