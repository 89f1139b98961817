package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/Martin212038201938/FunnyFunnel/internal/config"
	"github.com/Martin212038201938/FunnyFunnel/internal/httpapi"
	"github.com/Martin212038201938/FunnyFunnel/internal/profile"
)

const defaultListenAddr = "127.0.0.1:0"

// Server manages the HTTP server lifecycle for a profile daemon. The actual
// listen address is written to the profile's daemon.addr file so clients can
// find it.
type Server struct {
	httpServer  *http.Server
	listener    net.Listener
	profileName string
	logger      *zap.Logger
}

// NewServer binds the listener. Address precedence: Params override, then
// config listen_addr, then an ephemeral loopback port.
func NewServer(p Params, cfg *config.Config, api *httpapi.Server, logger *zap.Logger) (*Server, error) {
	addr := p.ListenAddr
	if addr == "" {
		addr = cfg.ListenAddr
	}
	if addr == "" {
		addr = defaultListenAddr
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Server{
		httpServer:  &http.Server{Handler: api.Router()},
		listener:    listener,
		profileName: p.ProfileName,
		logger:      logger,
	}, nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Start records the listen address and begins serving in the background.
func (s *Server) Start() error {
	if err := profile.WriteAddr(s.profileName, s.Addr()); err != nil {
		return err
	}
	s.logger.Info("http server starting", zap.String("addr", s.Addr()))

	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop shuts the server down gracefully and removes the address file.
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("http server stopping")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("shutdown error", zap.Error(err))
	}
	_ = os.Remove(profile.AddrPath(s.profileName))
}
