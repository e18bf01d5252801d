// Package swap implements the slot-swap protocol: a requester offers one of
// their SWAPPABLE events for a SWAPPABLE event of another user, and the owner
// of the target accepts or rejects.
//
// Each transition runs in a single store transaction. Both events (and the
// request, when responding) are read through the *ForUpdate calls, so a
// concurrent transition on the same rows waits and then observes the
// committed state. Preconditions are evaluated after the locks are held.
package swap

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"slot-swapper-api/internal/apperr"
	"slot-swapper-api/internal/model"
	"slot-swapper-api/internal/policy"
	"slot-swapper-api/internal/slot"
	"slot-swapper-api/internal/store"
)

// placeholderPrefix is never a prefix of a user id (users get UUIDs).
const placeholderPrefix = "swap:"

// Engine runs the swap protocol against a Store. Every mutation is one
// transaction.
type Engine struct {
	store store.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewEngine returns an Engine that stamps rows with UTC wall-clock time.
func NewEngine(st store.Store, log *slog.Logger) *Engine {
	return &Engine{
		store: st,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreateSwapRequest offers mySlotID (owned by callerID) for theirSlotID.
// Checks, first failure wins: both slots exist, caller owns mySlot, mySlot
// is SWAPPABLE, theirSlot is SWAPPABLE, theirSlot is not the caller's.
func (e *Engine) CreateSwapRequest(ctx context.Context, callerID, mySlotID, theirSlotID string) (*model.SwapRequest, error) {
	if mySlotID == "" || theirSlotID == "" {
		return nil, apperr.New(apperr.InvalidArgument, "mySlotId and theirSlotId required")
	}

	var out *model.SwapRequest
	err := e.store.InTx(ctx, func(tx store.Tx) error {
		mine, theirs, err := lockPair(ctx, tx, mySlotID, theirSlotID)
		if err != nil {
			return err
		}

		if err := policy.OwnsEvent(callerID, mine).Err(); err != nil {
			return err
		}
		if mine.Status != model.StatusSwappable {
			return apperr.Newf(apperr.InvalidState, "mySlot is %s, not SWAPPABLE", mine.Status)
		}
		if theirs.Status != model.StatusSwappable {
			return apperr.Newf(apperr.InvalidState, "theirSlot is %s, not SWAPPABLE", theirs.Status)
		}
		if err := policy.NotSelfSwap(callerID, theirs).Err(); err != nil {
			return err
		}

		next, err := slot.Next(mine.Status, slot.RequestCreated)
		if err != nil {
			return err
		}

		now := e.now()
		req := &model.SwapRequest{
			ID:          uuid.New().String(),
			RequesterID: callerID,
			RequesteeID: theirs.OwnerID,
			MySlotID:    mine.ID,
			TheirSlotID: theirs.ID,
			Status:      model.SwapPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.InsertSwapRequest(ctx, req); err != nil {
			return err
		}
		if err := tx.SetEventStatus(ctx, next, now, mine.ID, theirs.ID); err != nil {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, e.fail("create swap request", callerID, err, "slot", mySlotID, "target", theirSlotID)
	}

	e.log.Info("swap requested",
		"request", out.ID, "requester", out.RequesterID, "requestee", out.RequesteeID,
		"my_slot", out.MySlotID, "their_slot", out.TheirSlotID)
	return out, nil
}

// RespondToSwapRequest resolves a PENDING request. Only the requestee may
// respond, and only once. On accept the two events change owners and become
// BUSY; on reject both go back to SWAPPABLE.
func (e *Engine) RespondToSwapRequest(ctx context.Context, callerID, requestID string, accept bool) (model.SwapStatus, error) {
	if requestID == "" {
		return "", apperr.New(apperr.InvalidArgument, "requestId required")
	}

	var result model.SwapStatus
	err := e.store.InTx(ctx, func(tx store.Tx) error {
		req, err := tx.SwapRequestForUpdate(ctx, requestID)
		if err != nil {
			return apperr.FromStore(err, "swap request not found")
		}
		if err := policy.IsRequestee(callerID, req).Err(); err != nil {
			return err
		}
		if req.Status != model.SwapPending {
			return apperr.Newf(apperr.InvalidState, "swap request already %s", req.Status)
		}

		mine, theirs, err := lockPair(ctx, tx, req.MySlotID, req.TheirSlotID)
		if err != nil {
			if apperr.HasCode(err, apperr.NotFound) {
				return apperr.Newf(apperr.Inconsistent, "swap request %s references a missing slot", req.ID)
			}
			return err
		}
		if mine.Status != model.StatusSwapPending || theirs.Status != model.StatusSwapPending {
			return apperr.Newf(apperr.Inconsistent, "swap request %s is PENDING but slots are %s/%s",
				req.ID, mine.Status, theirs.Status)
		}

		now := e.now()
		if !accept {
			result = model.SwapRejected
			return reject(ctx, tx, req, now)
		}
		result = model.SwapAccepted
		return exchange(ctx, tx, req, mine, theirs, now)
	})
	if err != nil {
		return "", e.fail("respond to swap request", callerID, err, "request", requestID, "accept", accept)
	}

	e.log.Info("swap resolved", "request", requestID, "by", callerID, "status", result)
	return result, nil
}

func reject(ctx context.Context, tx store.Tx, req *model.SwapRequest, now time.Time) error {
	next, err := slot.Next(model.StatusSwapPending, slot.RequestRejected)
	if err != nil {
		return err
	}
	if err := tx.SetSwapRequestStatus(ctx, req.ID, model.SwapRejected, now); err != nil {
		return err
	}
	return tx.SetEventStatus(ctx, next, now, req.MySlotID, req.TheirSlotID)
}

// exchange swaps the owners of the two slots in three steps through a
// placeholder owner, then marks both BUSY.
func exchange(ctx context.Context, tx store.Tx, req *model.SwapRequest, mine, theirs *model.Event, now time.Time) error {
	next, err := slot.Next(model.StatusSwapPending, slot.RequestAccepted)
	if err != nil {
		return err
	}
	ownerA, ownerB := mine.OwnerID, theirs.OwnerID

	if err := tx.SetSwapRequestStatus(ctx, req.ID, model.SwapAccepted, now); err != nil {
		return err
	}
	if err := tx.SetEventOwner(ctx, mine.ID, placeholderPrefix+req.ID, now); err != nil {
		return err
	}
	if err := tx.SetEventOwner(ctx, theirs.ID, ownerA, now); err != nil {
		return err
	}
	if err := tx.SetEventOwner(ctx, mine.ID, ownerB, now); err != nil {
		return err
	}
	return tx.SetEventStatus(ctx, next, now, mine.ID, theirs.ID)
}

// lockPair reads both events under lock, always in ascending id order so
// that two transactions touching the same pair cannot deadlock.
func lockPair(ctx context.Context, tx store.Tx, myID, theirID string) (mine, theirs *model.Event, err error) {
	if myID == theirID {
		ev, err := tx.EventForUpdate(ctx, myID)
		if err != nil {
			return nil, nil, apperr.FromStore(err, "slot not found")
		}
		return ev, ev, nil
	}

	first, second := myID, theirID
	if second < first {
		first, second = second, first
	}
	a, err := tx.EventForUpdate(ctx, first)
	if err != nil {
		return nil, nil, apperr.FromStore(err, "slot not found")
	}
	b, err := tx.EventForUpdate(ctx, second)
	if err != nil {
		return nil, nil, apperr.FromStore(err, "slot not found")
	}
	if a.ID == myID {
		return a, b, nil
	}
	return b, a, nil
}

// fail maps err into the taxonomy and logs it. Inconsistent and transient
// failures are logged as errors, refusals at debug.
func (e *Engine) fail(op, callerID string, err error, attrs ...any) error {
	out := apperr.FromStore(err, "not found")
	attrs = append(attrs, "caller", callerID, "reason", apperr.CodeOf(out))
	switch apperr.CodeOf(out) {
	case apperr.Inconsistent, apperr.Transient:
		e.log.Error(op+" failed", append(attrs, "error", err)...)
	default:
		e.log.Debug(op+" refused", attrs...)
	}
	return out
}
