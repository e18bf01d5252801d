package handler

import (
	"log/slog"

	"google.golang.org/grpc"

	"slot-swapper-api/internal/auth"
	"slot-swapper-api/internal/middleware"
	"slot-swapper-api/internal/pb"
)

// NewServer builds the gRPC server with the interceptor chain
// logging -> rate limit -> auth and registers h.
func NewServer(h *Handler, signer *auth.Signer, rl *middleware.RateLimiter, log *slog.Logger) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ForceServerCodec(pb.Codec{}),
		grpc.ChainUnaryInterceptor(
			middleware.Logging(log),
			middleware.RateLimit(rl),
			middleware.Auth(signer),
		),
	)
	pb.RegisterSlotSwapServiceServer(srv, h)
	return srv
}
