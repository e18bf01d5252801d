package middleware

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"slot-swapper-api/internal/auth"
	"slot-swapper-api/internal/pb"
)

func echoUID(ctx context.Context, _ any) (any, error) {
	uid, _ := UserID(ctx)
	return uid, nil
}

func TestAuthInterceptor(t *testing.T) {
	signer := auth.NewSigner("test-secret")
	icpt := Auth(signer)
	tok, err := signer.Issue("user-1", "U")
	require.NoError(t, err)

	withAuth := func(v string) context.Context {
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", v))
	}
	protected := &grpc.UnaryServerInfo{FullMethod: pb.FullMethod("ListEvents")}

	got, err := icpt(withAuth("Bearer "+tok), nil, protected, echoUID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got)

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"no metadata", context.Background()},
		{"no token", withAuth("")},
		{"not bearer", withAuth("Token " + tok)},
		{"bad token", withAuth("Bearer nope")},
		{"wrong secret", withAuth("Bearer " + mustIssue(t, auth.NewSigner("other")))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := icpt(tt.ctx, nil, protected, echoUID)
			assert.Equal(t, codes.Unauthenticated, status.Code(err))
		})
	}

	// open methods pass through without a token
	got, err = icpt(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: pb.FullMethod("Login")}, echoUID)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func mustIssue(t *testing.T, s *auth.Signer) string {
	t.Helper()
	tok, err := s.Issue("x", "")
	require.NoError(t, err)
	return tok
}

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 3)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "request %d within burst", i)
	}
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "buckets are per client")
}

func TestRateLimitInterceptor(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	defer rl.Close()
	icpt := RateLimit(rl)

	ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 4000}})
	login := &grpc.UnaryServerInfo{FullMethod: pb.FullMethod("Login")}
	list := &grpc.UnaryServerInfo{FullMethod: pb.FullMethod("ListEvents")}

	_, err := icpt(ctx, nil, login, echoUID)
	require.NoError(t, err)
	_, err = icpt(ctx, nil, login, echoUID)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	// a new connection from the same host shares the bucket
	again := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 4001}})
	_, err = icpt(again, nil, login, echoUID)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	// other methods are never limited
	for i := 0; i < 5; i++ {
		_, err = icpt(ctx, nil, list, echoUID)
		require.NoError(t, err)
	}
}

type pipeAddr struct{}

func (pipeAddr) Network() string { return "pipe" }
func (pipeAddr) String() string  { return "pipe" }

func TestClientKey(t *testing.T) {
	tcp := func(ip net.IP, port int) net.Addr { return &net.TCPAddr{IP: ip, Port: port} }
	tests := []struct {
		name string
		addr net.Addr
		xff  string
		want string
	}{
		{"remote host", tcp(net.IPv4(203, 0, 113, 7), 5123), "", "203.0.113.7"},
		{"remote ignores forwarded", tcp(net.IPv4(203, 0, 113, 7), 5123), "198.51.100.1", "203.0.113.7"},
		{"loopback forwarded", tcp(net.IPv4(127, 0, 0, 1), 40000), "198.51.100.1", "198.51.100.1"},
		{"loopback v6 forwarded", tcp(net.IPv6loopback, 40000), "2001:db8::1", "2001:db8::1"},
		{"loopback first hop", tcp(net.IPv4(127, 0, 0, 1), 40000), " 198.51.100.1, 10.0.0.1", "198.51.100.1"},
		{"loopback direct", tcp(net.IPv4(127, 0, 0, 1), 40000), "", "127.0.0.1"},
		{"in-process forwarded", pipeAddr{}, "198.51.100.2", "198.51.100.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: tt.addr})
			if tt.xff != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(ForwardedFor, tt.xff))
			}
			assert.Equal(t, tt.want, clientKey(ctx))
		})
	}

	assert.Equal(t, "unknown", clientKey(context.Background()))
}
