package middleware

import (
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"slot-swapper-api/internal/pb"
)

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// ForwardedFor carries the original client address when a local proxy (the
// gRPC-Web bridge) makes the call on a browser's behalf.
const ForwardedFor = "x-forwarded-for"

// RateLimiter keeps one token bucket per client key (client IP).
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	r       rate.Limit
	burst   int
	stop    chan struct{}
	once    sync.Once
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		r:       rate.Limit(rps),
		burst:   burst,
		stop:    make(chan struct{}),
	}
	go rl.janitor(time.Minute, 3*time.Minute)
	return rl
}

// janitor drops clients not seen for idle.
func (rl *RateLimiter) janitor(every, idle time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-t.C:
			rl.mu.Lock()
			for key, c := range rl.clients {
				if time.Since(c.seen) > idle {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}

// Allow spends one token from key's bucket.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	c, ok := rl.clients[key]
	if !ok {
		c = &client{lim: rate.NewLimiter(rl.r, rl.burst)}
		rl.clients[key] = c
	}
	c.seen = time.Now()
	return c.lim.Allow()
}

// methods that should be rate limited
var limited = map[string]bool{
	pb.FullMethod("Register"): true,
	pb.FullMethod("Login"):    true,
}

func RateLimit(rl *RateLimiter) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if !limited[info.FullMethod] {
			return next(ctx, req)
		}
		if !rl.Allow(clientKey(ctx)) {
			return nil, status.Error(codes.ResourceExhausted, "too many requests")
		}
		return next(ctx, req)
	}
}

// clientKey is the peer's host without the port, so reconnecting does not
// buy a fresh bucket. Calls from a local proxy are keyed on the address it
// forwards instead.
func clientKey(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	host := p.Addr.String()
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if !localPeer(p.Addr, host) {
		return host
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(ForwardedFor); len(v) > 0 {
			if first := strings.TrimSpace(strings.Split(v[0], ",")[0]); first != "" {
				return first
			}
		}
	}
	return host
}

// localPeer reports whether the peer is on this host: loopback IP or an
// in-process transport.
func localPeer(addr net.Addr, host string) bool {
	switch addr.Network() {
	case "tcp", "tcp4", "tcp6":
		ip := net.ParseIP(host)
		return ip != nil && ip.IsLoopback()
	}
	return true
}
