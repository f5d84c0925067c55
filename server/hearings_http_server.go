package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const DEFAULT_LISTEN_ADDR = ":8080"

// SHUTDOWN_TIMEOUT bounds graceful shutdown once the run context is done.
const SHUTDOWN_TIMEOUT = 5 * time.Second

type HearingsHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	addr      string
	logger    *zap.Logger
}

func NewHearingsHttpServer(router *Router, muxRouter *mux.Router, addr string, logger *zap.Logger) *HearingsHttpServer {
	if addr == "" {
		addr = DEFAULT_LISTEN_ADDR
	}
	return &HearingsHttpServer{
		router:    router,
		muxRouter: muxRouter,
		addr:      addr,
		logger:    logger.Named("HearingsHttpServer"),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *HearingsHttpServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *HearingsHttpServer) Serve(ctx context.Context, ln net.Listener) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	<-errCh
	s.logger.Info("Server exiting")
	return nil
}
