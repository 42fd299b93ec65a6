package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/yndnr/tokmint/internal/server/config"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	certFile   string
	keyFile    string
}

// New creates a new HTTP server from cfg.
func New(cfg config.HTTPConfig, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		handler:  handler,
		certFile: cfg.TLSCertFile,
		keyFile:  cfg.TLSKeyFile,
	}
}

// TLSEnabled reports whether the server serves HTTPS.
func (s *Server) TLSEnabled() bool {
	return s.certFile != "" && s.keyFile != ""
}

// Serve accepts connections on l until Shutdown is called.
// It returns nil after a graceful shutdown.
func (s *Server) Serve(l net.Listener) error {
	var err error
	if s.TLSEnabled() {
		err = s.httpServer.ServeTLS(l, s.certFile, s.keyFile)
	} else {
		err = s.httpServer.Serve(l)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// ListenAndServe listens on the configured address and serves.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
