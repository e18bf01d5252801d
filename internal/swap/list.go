package swap

import (
	"context"

	"slot-swapper-api/internal/apperr"
	"slot-swapper-api/internal/model"
	"slot-swapper-api/internal/policy"
	"slot-swapper-api/internal/store"
)

type Requests struct {
	Incoming []model.SwapRequestView
	Outgoing []model.SwapRequestView
}

// ListSwapRequests returns the requests addressed to userID and those it
// sent, newest first.
func (e *Engine) ListSwapRequests(ctx context.Context, userID string) (*Requests, error) {
	in, err := e.store.ListSwapRequests(ctx, userID, store.Incoming)
	if err != nil {
		e.log.Error("list incoming swap requests", "user", userID, "error", err)
		return nil, apperr.FromStore(err, "")
	}
	out, err := e.store.ListSwapRequests(ctx, userID, store.Outgoing)
	if err != nil {
		e.log.Error("list outgoing swap requests", "user", userID, "error", err)
		return nil, apperr.FromStore(err, "")
	}
	return &Requests{Incoming: in, Outgoing: out}, nil
}

// GetSwapRequest returns one request to either of its parties.
func (e *Engine) GetSwapRequest(ctx context.Context, callerID, id string) (*model.SwapRequest, error) {
	if id == "" {
		return nil, apperr.New(apperr.InvalidArgument, "requestId required")
	}
	req, err := e.store.SwapRequestByID(ctx, id)
	if err != nil {
		return nil, e.fail("get swap request", callerID, apperr.FromStore(err, "swap request not found"), "request", id)
	}
	if err := policy.IsParty(callerID, req).Err(); err != nil {
		return nil, e.fail("get swap request", callerID, err, "request", id)
	}
	return req, nil
}
