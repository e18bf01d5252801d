package middleware

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"slot-swapper-api/internal/auth"
	"slot-swapper-api/internal/pb"
)

type ctxKey string

const UserIDKey ctxKey = "uid"

// skip auth for these
var open = map[string]bool{
	pb.FullMethod("Register"): true,
	pb.FullMethod("Login"):    true,
}

// WithUserID returns ctx carrying the authenticated caller.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, UserIDKey, uid)
}

// UserID returns the caller put there by Auth.
func UserID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UserIDKey).(string)
	return uid, ok && uid != ""
}

func Auth(signer *auth.Signer) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] {
			return next(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		// token from Authorization: Bearer <jwt>
		var raw string
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw, _ = auth.BearerToken(vals[0])
		}
		if raw == "" {
			return nil, status.Error(codes.Unauthenticated, "no token")
		}

		claims, err := signer.Parse(raw)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token")
		}
		return next(WithUserID(ctx, claims.UserID), req)
	}
}
