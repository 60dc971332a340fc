package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"course-service/pkg/logger"
)

// LoggingInterceptor logs each unary call with its status code and duration.
// Server-side failures (Internal, Unknown, DataLoss, Unavailable) are logged at error level.
func LoggingInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", ClientIP(ctx)),
		}
		l := logger.WithContext(ctx, log)

		switch code {
		case codes.OK:
			l.Info("grpc request", fields...)
		case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
			l.Error("grpc request", append(fields, zap.Error(err))...)
		default:
			l.Warn("grpc request", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}
