// Package health реализует стандартный сервис grpc.health.v1. Статус обслуживания
// выставляется по результатам периодической проверки хранилища.
package health

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/magabrotheeeer/oforha-backend/internal/lib/sl"
)

// ServiceName — имя сервиса, под которым публикуется статус API.
const ServiceName = "oforha.api"

// Pinger проверяет доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server — gRPC-сервер с сервисом проверки здоровья.
type Server struct {
	log      *slog.Logger
	grpc     *grpc.Server
	health   *grpchealth.Server
	pinger   Pinger
	interval time.Duration
}

// New создаёт Server. До первой проверки статус NOT_SERVING.
func New(log *slog.Logger, pinger Pinger, interval time.Duration) *Server {
	hs := grpchealth.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)

	return &Server{
		log:      log,
		grpc:     gs,
		health:   hs,
		pinger:   pinger,
		interval: interval,
	}
}

// Probe один раз проверяет хранилище и выставляет статус.
func (s *Server) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	const op = "grpc.health.Probe"

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.pinger.Ping(ctx); err != nil {
		s.log.Warn("storage ping failed", slog.String("op", op), sl.Err(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	return status
}

// Watch проверяет хранилище каждые interval до отмены ctx.
func (s *Server) Watch(ctx context.Context) {
	s.Probe(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}

// Serve принимает соединения на lis, пока ctx не отменён, затем
// переводит сервисы в NOT_SERVING и останавливает сервер.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("gRPC health service listening on", slog.String("address", lis.Addr().String()))
		errCh <- s.grpc.Serve(lis)
	}()
	go s.Watch(ctx)

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpc.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}
