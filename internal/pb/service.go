package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "slotswap.v1.SlotSwapService"

// FullMethod returns the gRPC path of a SlotSwapService method.
func FullMethod(name string) string { return "/" + ServiceName + "/" + name }

type SlotSwapServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Me(context.Context, *MeRequest) (*MeResponse, error)
	ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error)
	CreateEvent(context.Context, *CreateEventRequest) (*CreateEventResponse, error)
	UpdateEvent(context.Context, *UpdateEventRequest) (*UpdateEventResponse, error)
	DeleteEvent(context.Context, *DeleteEventRequest) (*DeleteEventResponse, error)
	GetEvent(context.Context, *GetEventRequest) (*GetEventResponse, error)
	ListSwappableSlots(context.Context, *ListSwappableSlotsRequest) (*ListSwappableSlotsResponse, error)
	CreateSwapRequest(context.Context, *CreateSwapRequestRequest) (*CreateSwapRequestResponse, error)
	GetSwapRequest(context.Context, *GetSwapRequestRequest) (*GetSwapRequestResponse, error)
	RespondToSwapRequest(context.Context, *RespondToSwapRequestRequest) (*RespondToSwapRequestResponse, error)
	ListSwapRequests(context.Context, *ListSwapRequestsRequest) (*ListSwapRequestsResponse, error)
}

// UnimplementedSlotSwapServiceServer answers every method with Unimplemented.
type UnimplementedSlotSwapServiceServer struct{}

func unimplemented(name string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", name)
}

func (UnimplementedSlotSwapServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, unimplemented("Register")
}
func (UnimplementedSlotSwapServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedSlotSwapServiceServer) Me(context.Context, *MeRequest) (*MeResponse, error) {
	return nil, unimplemented("Me")
}
func (UnimplementedSlotSwapServiceServer) ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error) {
	return nil, unimplemented("ListEvents")
}
func (UnimplementedSlotSwapServiceServer) CreateEvent(context.Context, *CreateEventRequest) (*CreateEventResponse, error) {
	return nil, unimplemented("CreateEvent")
}
func (UnimplementedSlotSwapServiceServer) UpdateEvent(context.Context, *UpdateEventRequest) (*UpdateEventResponse, error) {
	return nil, unimplemented("UpdateEvent")
}
func (UnimplementedSlotSwapServiceServer) DeleteEvent(context.Context, *DeleteEventRequest) (*DeleteEventResponse, error) {
	return nil, unimplemented("DeleteEvent")
}
func (UnimplementedSlotSwapServiceServer) GetEvent(context.Context, *GetEventRequest) (*GetEventResponse, error) {
	return nil, unimplemented("GetEvent")
}
func (UnimplementedSlotSwapServiceServer) GetSwapRequest(context.Context, *GetSwapRequestRequest) (*GetSwapRequestResponse, error) {
	return nil, unimplemented("GetSwapRequest")
}
func (UnimplementedSlotSwapServiceServer) ListSwappableSlots(context.Context, *ListSwappableSlotsRequest) (*ListSwappableSlotsResponse, error) {
	return nil, unimplemented("ListSwappableSlots")
}
func (UnimplementedSlotSwapServiceServer) CreateSwapRequest(context.Context, *CreateSwapRequestRequest) (*CreateSwapRequestResponse, error) {
	return nil, unimplemented("CreateSwapRequest")
}
func (UnimplementedSlotSwapServiceServer) RespondToSwapRequest(context.Context, *RespondToSwapRequestRequest) (*RespondToSwapRequestResponse, error) {
	return nil, unimplemented("RespondToSwapRequest")
}
func (UnimplementedSlotSwapServiceServer) ListSwapRequests(context.Context, *ListSwapRequestsRequest) (*ListSwapRequestsResponse, error) {
	return nil, unimplemented("ListSwapRequests")
}

// unary builds the MethodDesc for one method, decoding into a fresh request
// and running it through the server's interceptor chain.
func unary[Req any, PReq interface {
	*Req
	Message
}, Resp Message](name string, call func(SlotSwapServiceServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(SlotSwapServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(PReq))
			})
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SlotSwapServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", SlotSwapServiceServer.Register),
		unary("Login", SlotSwapServiceServer.Login),
		unary("Me", SlotSwapServiceServer.Me),
		unary("ListEvents", SlotSwapServiceServer.ListEvents),
		unary("CreateEvent", SlotSwapServiceServer.CreateEvent),
		unary("UpdateEvent", SlotSwapServiceServer.UpdateEvent),
		unary("DeleteEvent", SlotSwapServiceServer.DeleteEvent),
		unary("GetEvent", SlotSwapServiceServer.GetEvent),
		unary("ListSwappableSlots", SlotSwapServiceServer.ListSwappableSlots),
		unary("CreateSwapRequest", SlotSwapServiceServer.CreateSwapRequest),
		unary("GetSwapRequest", SlotSwapServiceServer.GetSwapRequest),
		unary("RespondToSwapRequest", SlotSwapServiceServer.RespondToSwapRequest),
		unary("ListSwapRequests", SlotSwapServiceServer.ListSwapRequests),
	},
	Metadata: "slotswap/v1/slotswap.proto",
}

func RegisterSlotSwapServiceServer(s grpc.ServiceRegistrar, srv SlotSwapServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client is a thin SlotSwapService client that always uses Codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client { return &Client{cc: cc} }

func invoke[Resp any, PResp interface {
	*Resp
	Message
}](ctx context.Context, cc grpc.ClientConnInterface, name string, in Message, opts []grpc.CallOption) (PResp, error) {
	out := PResp(new(Resp))
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := cc.Invoke(ctx, FullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, "Register", in, opts)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, "Login", in, opts)
}

func (c *Client) Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*MeResponse, error) {
	return invoke[MeResponse](ctx, c.cc, "Me", in, opts)
}

func (c *Client) ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error) {
	return invoke[ListEventsResponse](ctx, c.cc, "ListEvents", in, opts)
}

func (c *Client) CreateEvent(ctx context.Context, in *CreateEventRequest, opts ...grpc.CallOption) (*CreateEventResponse, error) {
	return invoke[CreateEventResponse](ctx, c.cc, "CreateEvent", in, opts)
}

func (c *Client) UpdateEvent(ctx context.Context, in *UpdateEventRequest, opts ...grpc.CallOption) (*UpdateEventResponse, error) {
	return invoke[UpdateEventResponse](ctx, c.cc, "UpdateEvent", in, opts)
}

func (c *Client) DeleteEvent(ctx context.Context, in *DeleteEventRequest, opts ...grpc.CallOption) (*DeleteEventResponse, error) {
	return invoke[DeleteEventResponse](ctx, c.cc, "DeleteEvent", in, opts)
}

func (c *Client) GetEvent(ctx context.Context, in *GetEventRequest, opts ...grpc.CallOption) (*GetEventResponse, error) {
	return invoke[GetEventResponse](ctx, c.cc, "GetEvent", in, opts)
}

func (c *Client) ListSwappableSlots(ctx context.Context, in *ListSwappableSlotsRequest, opts ...grpc.CallOption) (*ListSwappableSlotsResponse, error) {
	return invoke[ListSwappableSlotsResponse](ctx, c.cc, "ListSwappableSlots", in, opts)
}

func (c *Client) CreateSwapRequest(ctx context.Context, in *CreateSwapRequestRequest, opts ...grpc.CallOption) (*CreateSwapRequestResponse, error) {
	return invoke[CreateSwapRequestResponse](ctx, c.cc, "CreateSwapRequest", in, opts)
}

func (c *Client) GetSwapRequest(ctx context.Context, in *GetSwapRequestRequest, opts ...grpc.CallOption) (*GetSwapRequestResponse, error) {
	return invoke[GetSwapRequestResponse](ctx, c.cc, "GetSwapRequest", in, opts)
}

func (c *Client) RespondToSwapRequest(ctx context.Context, in *RespondToSwapRequestRequest, opts ...grpc.CallOption) (*RespondToSwapRequestResponse, error) {
	return invoke[RespondToSwapRequestResponse](ctx, c.cc, "RespondToSwapRequest", in, opts)
}

func (c *Client) ListSwapRequests(ctx context.Context, in *ListSwapRequestsRequest, opts ...grpc.CallOption) (*ListSwapRequestsResponse, error) {
	return invoke[ListSwapRequestsResponse](ctx, c.cc, "ListSwapRequests", in, opts)
}
