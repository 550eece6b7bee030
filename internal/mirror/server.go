package mirror

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/maptools/internal/logging"
)

// Path is where the hub is mounted.
const Path = "/mirror"

// Options configures Start.
type Options struct {
	Addr      string // listen address, e.g. ":7420"
	Advertise bool   // register over mDNS
	Name      string // mDNS instance name
	Map       string // advertised in the TXT record
}

// Server is a running mirror.
type Server struct {
	Hub *Hub

	listener net.Listener
	http     *http.Server
	mdns     *zeroconf.Server

	closeOnce sync.Once
	closeErr  error
}

// Start listens on opts.Addr and serves the hub until ctx is done or Close
// is called.
func Start(ctx context.Context, opts Options) (*Server, error) {
	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", opts.Addr, err)
	}

	s := &Server{Hub: NewHub(), listener: ln}

	mux := http.NewServeMux()
	mux.Handle(Path, s.Hub)
	s.http = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if opts.Advertise {
		port := ln.Addr().(*net.TCPAddr).Port
		s.mdns, err = zeroconf.Register(opts.Name, ServiceType, ServiceDomain, port, s.txt(opts), nil)
		if err != nil {
			_ = ln.Close()
			return nil, fmt.Errorf("failed to register mDNS service: %w", err)
		}
		logging.Info("Mirror advertised over mDNS",
			zap.String("name", opts.Name),
			zap.Int("port", port),
		)
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Mirror server stopped", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()

	logging.Info("Mirror listening", zap.String("addr", ln.Addr().String()))
	return s, nil
}

func (s *Server) txt(opts Options) []string {
	return []string{
		"id=" + s.Hub.ID(),
		"path=" + Path,
		"map=" + opts.Map,
		"version=" + appVersion(),
	}
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Publish forwards a frame to the hub.
func (s *Server) Publish(frame string) {
	s.Hub.Publish(frame)
}

// Close stops advertising, disconnects watchers and shuts the listener.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		if s.mdns != nil {
			s.mdns.Shutdown()
		}
		s.Hub.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.closeErr = s.http.Shutdown(ctx)
	})
	return s.closeErr
}
