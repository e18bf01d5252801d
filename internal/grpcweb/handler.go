package grpcweb

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	"slot-swapper-api/internal/middleware"
	"slot-swapper-api/internal/pb"
)

// maxBody caps a single grpc-web request.
const maxBody = 4 << 20

// Bridge translates gRPC-Web (browser HTTP/1.1) to native gRPC.
type Bridge struct {
	conn *grpc.ClientConn
	log  *slog.Logger
}

// New dials the gRPC server at addr (e.g. "localhost:50051").
func New(addr string, log *slog.Logger, opts ...grpc.DialOption) (*Bridge, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpcweb dial: %w", err)
	}
	return &Bridge{conn: conn, log: log}, nil
}

func (b *Bridge) Close() error { return b.conn.Close() }

// Handler returns an http.Handler that translates gRPC-Web to gRPC. Only
// SlotSwapService paths are forwarded.
func (b *Bridge) Handler() http.Handler {
	prefix := "/" + pb.ServiceName + "/"
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, X-Grpc-Web, X-User-Agent, Authorization, x-grpc-web")
		w.Header().Set("Access-Control-Expose-Headers",
			"Grpc-Status, Grpc-Message, Grpc-Status-Details-Bin, grpc-status, grpc-message")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/grpc-web") {
			http.Error(w, "not grpc-web", http.StatusUnsupportedMediaType)
			return
		}
		if !strings.HasPrefix(r.URL.Path, prefix) {
			writeStatus(w, status.New(codes.Unimplemented, "unknown method"))
			return
		}

		b.log.Debug("grpc-web", "method", r.URL.Path)
		b.forward(w, r)
	})
}

func (b *Bridge) forward(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
	if err != nil {
		writeStatus(w, status.New(codes.Internal, "read body failed"))
		return
	}
	payload, err := parseFrame(body)
	if err != nil {
		writeStatus(w, status.New(codes.InvalidArgument, err.Error()))
		return
	}

	// forward metadata; the client address is taken from the connection,
	// never from a header the browser could set
	md := metadata.MD{}
	if vals := r.Header.Values("Authorization"); len(vals) > 0 {
		md.Set("authorization", vals...)
	}
	md.Set(middleware.ForwardedFor, remoteHost(r.RemoteAddr))
	ctx := metadata.NewOutgoingContext(r.Context(), md)

	// invoke gRPC method using raw codec (pass-through bytes)
	resp := &rawMsg{}
	err = b.conn.Invoke(ctx, r.URL.Path, &rawMsg{data: payload}, resp, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		st := status.Convert(err)
		b.log.Debug("grpc-web error", "method", r.URL.Path, "code", st.Code().String(), "message", st.Message())
		writeStatus(w, st)
		return
	}
	writeSuccess(w, resp.data)
}

// parseFrame returns the message of a single grpc-web data frame:
// 1-byte flag + 4-byte big-endian length + protobuf.
func parseFrame(body []byte) ([]byte, error) {
	if len(body) > maxBody {
		return nil, fmt.Errorf("body too large")
	}
	if len(body) < 5 {
		return nil, fmt.Errorf("body too short")
	}
	if body[0]&0x01 != 0 {
		return nil, fmt.Errorf("compressed frames not supported")
	}
	msgLen := binary.BigEndian.Uint32(body[1:5])
	if uint64(msgLen)+5 > uint64(len(body)) {
		return nil, fmt.Errorf("incomplete frame")
	}
	return body[5 : 5+msgLen], nil
}

func remoteHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// rawMsg wraps raw protobuf bytes.
type rawMsg struct{ data []byte }

// rawCodec passes bytes through without marshal/unmarshal.
type rawCodec struct{}

func (rawCodec) Marshal(v any) ([]byte, error) {
	return v.(*rawMsg).data, nil
}
func (rawCodec) Unmarshal(data []byte, v any) error {
	m := v.(*rawMsg)
	m.data = append([]byte(nil), data...)
	return nil
}
func (rawCodec) Name() string { return "proto" }

func frame(flag byte, data []byte) []byte {
	f := make([]byte, 5+len(data))
	f[0] = flag
	binary.BigEndian.PutUint32(f[1:5], uint32(len(data)))
	copy(f[5:], data)
	return f
}

func trailer(st *status.Status) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "grpc-status:%d\r\n", st.Code())
	if msg := st.Message(); msg != "" {
		fmt.Fprintf(&sb, "grpc-message:%s\r\n", url.PathEscape(msg))
	}
	if len(st.Details()) > 0 {
		if raw, err := proto.Marshal(st.Proto()); err == nil {
			fmt.Fprintf(&sb, "grpc-status-details-bin:%s\r\n", base64.RawStdEncoding.EncodeToString(raw))
		}
	}
	return frame(0x80, []byte(sb.String()))
}

func writeStatus(w http.ResponseWriter, st *status.Status) {
	w.Header().Set("Content-Type", "application/grpc-web+proto")
	w.WriteHeader(http.StatusOK)
	w.Write(trailer(st))
}

func writeSuccess(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/grpc-web+proto")
	w.WriteHeader(http.StatusOK)
	w.Write(frame(0x00, data))
	w.Write(trailer(status.New(codes.OK, "")))
}
