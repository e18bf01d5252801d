// Package policy holds the authorization predicates that gate every slot and
// swap transition. The functions are pure: they look at the caller and a
// snapshot of the entity and never touch the store.
package policy

import (
	"slot-swapper-api/internal/apperr"
	"slot-swapper-api/internal/model"
)

type Decision struct {
	Allowed bool
	Reason  apperr.Code
	Message string
}

var allow = Decision{Allowed: true}

func deny(reason apperr.Code, msg string) Decision {
	return Decision{Reason: reason, Message: msg}
}

// Err is nil for an allowed decision.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return apperr.New(d.Reason, d.Message)
}

func OwnsEvent(callerID string, ev *model.Event) Decision {
	if ev.OwnerID != callerID {
		return deny(apperr.Forbidden, "event not owned by caller")
	}
	return allow
}

// NotSelfSwap rejects a request whose target slot already belongs to the caller.
func NotSelfSwap(callerID string, theirs *model.Event) Decision {
	if theirs.OwnerID == callerID {
		return deny(apperr.InvalidOperation, "cannot request your own slot")
	}
	return allow
}

// IsRequestee allows only the counterparty of a request to respond to it.
func IsRequestee(callerID string, req *model.SwapRequest) Decision {
	if req.RequesteeID != callerID {
		return deny(apperr.Forbidden, "only the requestee may respond")
	}
	return allow
}

// OwnerMayEdit covers owner-side edits and deletes: the caller must own the
// event and the event must not be locked into a pending swap.
func OwnerMayEdit(callerID string, ev *model.Event) Decision {
	if d := OwnsEvent(callerID, ev); !d.Allowed {
		return d
	}
	if ev.Status == model.StatusSwapPending {
		return deny(apperr.InvalidState, "event is part of a pending swap")
	}
	return allow
}

// MayViewEvent lets the owner see any of their events and everyone else see
// events that are on offer.
func MayViewEvent(callerID string, ev *model.Event) Decision {
	if ev.OwnerID == callerID || ev.Status == model.StatusSwappable {
		return allow
	}
	return deny(apperr.Forbidden, "event not visible to caller")
}

// IsParty allows the requester and the requestee of a swap request.
func IsParty(callerID string, req *model.SwapRequest) Decision {
	if req.RequesterID != callerID && req.RequesteeID != callerID {
		return deny(apperr.Forbidden, "not a party to this swap request")
	}
	return allow
}
