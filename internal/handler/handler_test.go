package handler_test

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/timestamppb"

	"slot-swapper-api/internal/account"
	"slot-swapper-api/internal/apperr"
	"slot-swapper-api/internal/auth"
	"slot-swapper-api/internal/handler"
	"slot-swapper-api/internal/middleware"
	"slot-swapper-api/internal/pb"
	"slot-swapper-api/internal/slot"
	"slot-swapper-api/internal/store"
	"slot-swapper-api/internal/swap"
	"slot-swapper-api/internal/testutil"
)

const secret = "test-secret"

// serve starts the full gRPC stack on a bufconn listener backed by st.
func serve(t *testing.T, st store.Store) *pb.Client {
	t.Helper()
	log := testutil.Logger()
	signer := auth.NewSigner(secret)
	h := handler.New(
		account.NewService(st, signer, log),
		slot.NewManager(st, log),
		swap.NewEngine(st, log),
	)
	rl := middleware.NewRateLimiter(1000, 1000)
	t.Cleanup(rl.Close)
	srv := handler.NewServer(h, signer, rl, log)

	lis := bufconn.Listen(1 << 20)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return pb.NewClient(conn)
}

type user struct {
	id  string
	ctx context.Context
}

func register(t *testing.T, c *pb.Client, name string) user {
	t.Helper()
	resp, err := c.Register(context.Background(), &pb.RegisterRequest{
		Email:    fmt.Sprintf("%s-%s@test.com", name, uuid.New().String()[:8]),
		Password: "testpass123",
		Name:     name,
	})
	require.NoError(t, err)
	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+resp.Token)
	return user{id: resp.UserId, ctx: ctx}
}

func createEvent(t *testing.T, c *pb.Client, u user, hoursFromNow int, status string) *pb.Event {
	t.Helper()
	start := time.Now().Add(time.Duration(hoursFromNow) * time.Hour).Truncate(time.Second)
	resp, err := c.CreateEvent(u.ctx, &pb.CreateEventRequest{
		Title:     fmt.Sprintf("slot-%d", hoursFromNow),
		StartTime: timestamppb.New(start),
		EndTime:   timestamppb.New(start.Add(time.Hour)),
		Status:    status,
	})
	require.NoError(t, err)
	return resp.Event
}

func assertStatus(t *testing.T, err error, code codes.Code, reason apperr.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, status.Code(err), "grpc code: %v", err)
	assert.Equal(t, reason, handler.ReasonOf(err), "reason: %v", err)
}

// ----- auth -----

func TestRegisterAndLogin(t *testing.T) {
	c := serve(t, testutil.NewSQLiteStore(t))
	email := fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])

	rr, err := c.Register(context.Background(), &pb.RegisterRequest{Email: email, Password: "testpass123", Name: "Test User"})
	require.NoError(t, err)
	assert.NotEmpty(t, rr.UserId)
	assert.NotEmpty(t, rr.Token)

	lr, err := c.Login(context.Background(), &pb.LoginRequest{Email: email, Password: "testpass123"})
	require.NoError(t, err)
	assert.Equal(t, rr.UserId, lr.UserId)
	assert.Equal(t, "Test User", lr.Name)

	_, err = c.Login(context.Background(), &pb.LoginRequest{Email: email, Password: "wrongpass1"})
	assertStatus(t, err, codes.Unauthenticated, apperr.Unauthenticated)

	_, err = c.Register(context.Background(), &pb.RegisterRequest{Email: email, Password: "testpass123", Name: "Again"})
	assertStatus(t, err, codes.AlreadyExists, apperr.Conflict)

	_, err = c.Register(context.Background(), &pb.RegisterRequest{Email: "x@y.com", Password: "short", Name: "X"})
	assertStatus(t, err, codes.InvalidArgument, apperr.InvalidArgument)
}

func TestMe(t *testing.T) {
	c := serve(t, testutil.NewSQLiteStore(t))
	alice := register(t, c, "alice")

	me, err := c.Me(alice.ctx, &pb.MeRequest{})
	require.NoError(t, err)
	assert.Equal(t, alice.id, me.UserId)
	assert.Equal(t, "alice", me.Name)
}

func TestUnauthenticated(t *testing.T) {
	c := serve(t, testutil.NewSQLiteStore(t))

	_, err := c.ListEvents(context.Background(), &pb.ListEventsRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	bad := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer nope")
	_, err = c.CreateSwapRequest(bad, &pb.CreateSwapRequestRequest{MySlotId: "a", TheirSlotId: "b"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

// ----- events -----

func TestEventCRUD(t *testing.T) {
	c := serve(t, testutil.NewSQLiteStore(t))
	alice := register(t, c, "alice")
	bob := register(t, c, "bob")

	ev := createEvent(t, c, alice, 3, "")
	assert.Equal(t, "BUSY", ev.Status)
	assert.Equal(t, alice.id, ev.OwnerId)

	swappable := "SWAPPABLE"
	up, err := c.UpdateEvent(alice.ctx, &pb.UpdateEventRequest{Id: ev.Id, Status: &swappable})
	require.NoError(t, err)
	assert.Equal(t, "SWAPPABLE", up.Event.Status)
	assert.Equal(t, ev.Title, up.Event.Title)

	list, err := c.ListEvents(alice.ctx, &pb.ListEventsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Events, 1)
	assert.True(t, list.Events[0].StartTime.AsTime().Equal(ev.StartTime.AsTime()))

	slots, err := c.ListSwappableSlots(bob.ctx, &pb.ListSwappableSlotsRequest{})
	require.NoError(t, err)
	require.Len(t, slots.Slots, 1)
	assert.Equal(t, "alice", slots.Slots[0].OwnerName)

	got, err := c.GetEvent(bob.ctx, &pb.GetEventRequest{Id: ev.Id})
	require.NoError(t, err)
	assert.Equal(t, alice.id, got.Event.OwnerId)

	_, err = c.DeleteEvent(bob.ctx, &pb.DeleteEventRequest{Id: ev.Id})
	assertStatus(t, err, codes.PermissionDenied, apperr.Forbidden)

	pending := "SWAP_PENDING"
	_, err = c.UpdateEvent(alice.ctx, &pb.UpdateEventRequest{Id: ev.Id, Status: &pending})
	assertStatus(t, err, codes.FailedPrecondition, apperr.InvalidOperation)

	_, err = c.DeleteEvent(alice.ctx, &pb.DeleteEventRequest{Id: ev.Id})
	require.NoError(t, err)
	_, err = c.DeleteEvent(alice.ctx, &pb.DeleteEventRequest{Id: ev.Id})
	assertStatus(t, err, codes.NotFound, apperr.NotFound)
	_, err = c.GetEvent(alice.ctx, &pb.GetEventRequest{Id: ev.Id})
	assertStatus(t, err, codes.NotFound, apperr.NotFound)
}

// ----- swaps -----

func testSwapFlow(t *testing.T, st store.Store) {
	c := serve(t, st)
	alice := register(t, c, "alice")
	bob := register(t, c, "bob")
	a1 := createEvent(t, c, alice, 2, "SWAPPABLE")
	b1 := createEvent(t, c, bob, 4, "SWAPPABLE")

	cr, err := c.CreateSwapRequest(alice.ctx, &pb.CreateSwapRequestRequest{MySlotId: a1.Id, TheirSlotId: b1.Id})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", cr.Request.Status)
	assert.Equal(t, bob.id, cr.Request.RequesteeId)

	// both slots are now off the market
	slots, err := c.ListSwappableSlots(bob.ctx, &pb.ListSwappableSlotsRequest{})
	require.NoError(t, err)
	for _, s := range slots.Slots {
		assert.NotContains(t, []string{a1.Id, b1.Id}, s.Id)
	}

	// either party can read the request, nobody else
	got, err := c.GetSwapRequest(alice.ctx, &pb.GetSwapRequestRequest{Id: cr.Request.Id})
	require.NoError(t, err)
	assert.Equal(t, b1.Id, got.Request.TheirSlotId)
	_, err = c.GetSwapRequest(register(t, c, "carol").ctx, &pb.GetSwapRequestRequest{Id: cr.Request.Id})
	assertStatus(t, err, codes.PermissionDenied, apperr.Forbidden)

	// only the requestee may respond
	_, err = c.RespondToSwapRequest(alice.ctx, &pb.RespondToSwapRequestRequest{RequestId: cr.Request.Id, Accept: true})
	assertStatus(t, err, codes.PermissionDenied, apperr.Forbidden)

	lists, err := c.ListSwapRequests(bob.ctx, &pb.ListSwapRequestsRequest{})
	require.NoError(t, err)
	require.Len(t, lists.Incoming, 1)
	assert.Empty(t, lists.Outgoing)
	assert.Equal(t, "alice", lists.Incoming[0].RequesterName)
	assert.Equal(t, a1.Title, lists.Incoming[0].MySlotTitle)

	rr, err := c.RespondToSwapRequest(bob.ctx, &pb.RespondToSwapRequestRequest{RequestId: cr.Request.Id, Accept: true})
	require.NoError(t, err)
	assert.Equal(t, "ACCEPTED", rr.Status)

	_, err = c.RespondToSwapRequest(bob.ctx, &pb.RespondToSwapRequestRequest{RequestId: cr.Request.Id, Accept: false})
	assertStatus(t, err, codes.FailedPrecondition, apperr.InvalidState)

	mine, err := c.ListEvents(alice.ctx, &pb.ListEventsRequest{})
	require.NoError(t, err)
	require.Len(t, mine.Events, 1)
	assert.Equal(t, b1.Id, mine.Events[0].Id)
	assert.Equal(t, "BUSY", mine.Events[0].Status)

	theirs, err := c.ListEvents(bob.ctx, &pb.ListEventsRequest{})
	require.NoError(t, err)
	require.Len(t, theirs.Events, 1)
	assert.Equal(t, a1.Id, theirs.Events[0].Id)
}

func TestSwapFlow(t *testing.T) {
	testSwapFlow(t, testutil.NewSQLiteStore(t))
}

func TestSwapFlowPostgres(t *testing.T) {
	testSwapFlow(t, testutil.NewPostgresStore(t))
}

func TestCreateSwapErrors(t *testing.T) {
	c := serve(t, testutil.NewSQLiteStore(t))
	alice := register(t, c, "alice")
	bob := register(t, c, "bob")
	a1 := createEvent(t, c, alice, 2, "SWAPPABLE")
	a2 := createEvent(t, c, alice, 3, "SWAPPABLE")
	busy := createEvent(t, c, bob, 4, "BUSY")

	_, err := c.CreateSwapRequest(alice.ctx, &pb.CreateSwapRequestRequest{MySlotId: a1.Id, TheirSlotId: "missing"})
	assertStatus(t, err, codes.NotFound, apperr.NotFound)

	_, err = c.CreateSwapRequest(alice.ctx, &pb.CreateSwapRequestRequest{MySlotId: a1.Id, TheirSlotId: busy.Id})
	assertStatus(t, err, codes.FailedPrecondition, apperr.InvalidState)

	_, err = c.CreateSwapRequest(alice.ctx, &pb.CreateSwapRequestRequest{MySlotId: a1.Id, TheirSlotId: a2.Id})
	assertStatus(t, err, codes.FailedPrecondition, apperr.InvalidOperation)

	_, err = c.CreateSwapRequest(bob.ctx, &pb.CreateSwapRequestRequest{MySlotId: a1.Id, TheirSlotId: a2.Id})
	assertStatus(t, err, codes.PermissionDenied, apperr.Forbidden)

	_, err = c.CreateSwapRequest(alice.ctx, &pb.CreateSwapRequestRequest{})
	assertStatus(t, err, codes.InvalidArgument, apperr.InvalidArgument)
}

func TestConcurrentSwapRequests(t *testing.T) {
	testutil.EachStore(t, testConcurrentSwapRequests)
}

func testConcurrentSwapRequests(t *testing.T, st store.Store) {
	c := serve(t, st)
	owner := register(t, c, "owner")
	target := createEvent(t, c, owner, 1, "SWAPPABLE")

	const n = 6
	users := make([]user, n)
	offers := make([]*pb.Event, n)
	for i := range users {
		users[i] = register(t, c, fmt.Sprintf("u%d", i))
		offers[i] = createEvent(t, c, users[i], 2+i, "SWAPPABLE")
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.CreateSwapRequest(users[i].ctx, &pb.CreateSwapRequestRequest{
				MySlotId: offers[i].Id, TheirSlotId: target.Id,
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.Equal(t, apperr.InvalidState, handler.ReasonOf(err))
	}
	assert.Equal(t, 1, ok, "exactly one request may claim the slot")
}
