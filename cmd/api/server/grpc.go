package server

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpcadapter "course-service/internal/adapter/grpc"
	"course-service/internal/adapter/grpc/middleware"
	"course-service/pkg/logger"
)

// SetupGRPC creates and configures the gRPC server
func SetupGRPC(catalog grpcadapter.CatalogServer, rateLimiter *middleware.RateLimiter, l *zap.Logger) (*grpc.Server, *health.Server) {
	// Request ID first so every later interceptor can log it
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logger.RequestIDInterceptor(),
			middleware.LoggingInterceptor(l),
			rateLimiter.UnaryInterceptor(),
		),
	)
	grpcadapter.RegisterCatalogServer(grpcServer, catalog)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(grpcadapter.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)

	return grpcServer, healthServer
}
