// Package slot owns the Event status state machine and the owner-side
// operations on events.
//
//	BUSY         --MarkSwappable-->   SWAPPABLE
//	SWAPPABLE    --MarkBusy-->        BUSY
//	SWAPPABLE    --RequestCreated-->  SWAP_PENDING
//	SWAP_PENDING --RequestRejected--> SWAPPABLE
//	SWAP_PENDING --RequestAccepted--> BUSY (owner changes)
//
// SWAP_PENDING is entered and left only by the swap engine.
package slot

import (
	"slot-swapper-api/internal/apperr"
	"slot-swapper-api/internal/model"
)

type Trigger int

const (
	MarkSwappable Trigger = iota
	MarkBusy
	RequestCreated
	RequestRejected
	RequestAccepted
)

func (t Trigger) String() string {
	switch t {
	case MarkSwappable:
		return "mark-swappable"
	case MarkBusy:
		return "mark-busy"
	case RequestCreated:
		return "request-created"
	case RequestRejected:
		return "request-rejected"
	case RequestAccepted:
		return "request-accepted"
	}
	return "unknown"
}

type edge struct {
	from model.EventStatus
	on   Trigger
}

var transitions = map[edge]model.EventStatus{
	{model.StatusBusy, MarkSwappable}:          model.StatusSwappable,
	{model.StatusSwappable, MarkBusy}:          model.StatusBusy,
	{model.StatusSwappable, RequestCreated}:    model.StatusSwapPending,
	{model.StatusSwapPending, RequestRejected}: model.StatusSwappable,
	{model.StatusSwapPending, RequestAccepted}: model.StatusBusy,
}

// Next returns the status reached from `from` on trigger t, or an
// INVALID_STATE error if the machine has no such edge.
func Next(from model.EventStatus, t Trigger) (model.EventStatus, error) {
	to, ok := transitions[edge{from, t}]
	if !ok {
		return "", apperr.Newf(apperr.InvalidState, "event is %s, cannot %s", from, t)
	}
	return to, nil
}

// OwnerTarget maps an owner-requested status change onto the state machine.
// Asking for the current status is a no-op. SWAP_PENDING can never be
// requested by an owner.
func OwnerTarget(from, want model.EventStatus) (model.EventStatus, error) {
	if !want.Valid() {
		return "", apperr.Newf(apperr.InvalidArgument, "unknown status %q", want)
	}
	if want == model.StatusSwapPending {
		return "", apperr.New(apperr.InvalidOperation, "SWAP_PENDING is set by swap requests only")
	}
	if from == want {
		return from, nil
	}
	if want == model.StatusSwappable {
		return Next(from, MarkSwappable)
	}
	return Next(from, MarkBusy)
}
