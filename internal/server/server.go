package server

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/handler"
	"github.com/MKhiriev/go-story-sync/internal/logger"
)

var errNoServersAreCreated = errors.New("no servers are created")

type transport struct {
	name string
	Server
}

// server runs the HTTP API and the gRPC health service side by side until
// the process receives SIGTERM, SIGINT or SIGQUIT. Transports stop in the
// order they were started, so HTTP streams close before health goes
// NOT_SERVING.
type server struct {
	transports []transport
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	s := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		s.transports = append(s.transports, transport{"HTTP", newHTTPServer(handlers.HTTP.Init(), cfg, logger)})
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, err
		}
		s.transports = append(s.transports, transport{"gRPC", grpcSrv})
	}

	if len(s.transports) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	for _, t := range s.transports {
		s.logger.Info().Str("transport", t.name).Msg("shutting down")
		t.Shutdown()
	}
}

func (s *server) run() error {
	if len(s.transports) == 0 {
		return errNoServersAreCreated
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	var wg sync.WaitGroup
	for _, t := range s.transports {
		s.logger.Info().Str("transport", t.name).Msg("launching server")
		wg.Add(1)
		go func() {
			defer wg.Done()
			t.RunServer()
		}()
	}

	<-ctx.Done()
	s.Shutdown()
	wg.Wait()

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}
