package middleware

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Logging logs one line per call. Server-side failures are logged at error
// level, client mistakes at info.
func Logging(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		st := status.Convert(err)
		attrs := []any{"method", info.FullMethod, "code", st.Code().String(), "took", time.Since(start)}
		switch st.Code() {
		case codes.Internal, codes.Unavailable, codes.Unknown:
			log.Error("rpc", append(attrs, "error", st.Message())...)
		default:
			log.Info("rpc", attrs...)
		}
		return resp, err
	}
}
