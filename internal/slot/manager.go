package slot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"slot-swapper-api/internal/apperr"
	"slot-swapper-api/internal/model"
	"slot-swapper-api/internal/policy"
	"slot-swapper-api/internal/store"
)

// Manager runs the owner-side event operations. Each mutation is one store
// transaction that re-reads the event under lock before applying policy.
type Manager struct {
	store store.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewManager returns a Manager that stamps rows with UTC wall-clock time.
func NewManager(st store.Store, log *slog.Logger) *Manager {
	return &Manager{
		store: st,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

type NewEvent struct {
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    model.EventStatus // empty means BUSY
}

// Patch is a partial update; nil fields keep their stored value.
type Patch struct {
	Title     *string
	StartTime *time.Time
	EndTime   *time.Time
	Status    *model.EventStatus
}

func (m *Manager) Create(ctx context.Context, callerID string, in NewEvent) (*model.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.StartTime.IsZero() || in.EndTime.IsZero() {
		return nil, apperr.New(apperr.InvalidArgument, "title, startTime and endTime required")
	}

	status := in.Status
	if status == "" {
		status = model.StatusBusy
	}
	if !status.Valid() {
		return nil, apperr.Newf(apperr.InvalidArgument, "unknown status %q", status)
	}
	if status == model.StatusSwapPending {
		return nil, apperr.New(apperr.InvalidOperation, "SWAP_PENDING is set by swap requests only")
	}

	now := m.now()
	ev := &model.Event{
		ID:        uuid.New().String(),
		OwnerID:   callerID,
		Title:     title,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := m.store.InTx(ctx, func(tx store.Tx) error {
		return tx.InsertEvent(ctx, ev)
	})
	if err != nil {
		m.log.Error("create event failed", "owner", callerID, "error", err)
		return nil, apperr.FromStore(err, "owner not found")
	}
	m.log.Info("event created", "event", ev.ID, "owner", callerID, "status", ev.Status)
	return ev, nil
}

func (m *Manager) Update(ctx context.Context, callerID, id string, p Patch) (*model.Event, error) {
	if id == "" {
		return nil, apperr.New(apperr.InvalidArgument, "id required")
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, apperr.New(apperr.InvalidArgument, "title cannot be empty")
	}

	var out *model.Event
	err := m.store.InTx(ctx, func(tx store.Tx) error {
		ev, err := tx.EventForUpdate(ctx, id)
		if err != nil {
			return apperr.FromStore(err, "event not found")
		}
		if err := policy.OwnerMayEdit(callerID, ev).Err(); err != nil {
			return err
		}

		if p.Status != nil {
			next, err := OwnerTarget(ev.Status, *p.Status)
			if err != nil {
				return err
			}
			ev.Status = next
		}
		if p.Title != nil {
			ev.Title = strings.TrimSpace(*p.Title)
		}
		if p.StartTime != nil {
			ev.StartTime = *p.StartTime
		}
		if p.EndTime != nil {
			ev.EndTime = *p.EndTime
		}
		ev.UpdatedAt = m.now()

		if err := tx.UpdateEvent(ctx, ev); err != nil {
			return err
		}
		out = ev
		return nil
	})
	if err != nil {
		return nil, m.fail("update event", id, callerID, err)
	}
	m.log.Info("event updated", "event", id, "owner", callerID, "status", out.Status)
	return out, nil
}

// Delete soft-deletes the event so swap history that references it still
// resolves. Events inside a pending swap cannot be deleted.
func (m *Manager) Delete(ctx context.Context, callerID, id string) error {
	if id == "" {
		return apperr.New(apperr.InvalidArgument, "id required")
	}
	err := m.store.InTx(ctx, func(tx store.Tx) error {
		ev, err := tx.EventForUpdate(ctx, id)
		if err != nil {
			return apperr.FromStore(err, "event not found")
		}
		if err := policy.OwnerMayEdit(callerID, ev).Err(); err != nil {
			return err
		}
		return tx.DeleteEvent(ctx, id, m.now())
	})
	if err != nil {
		return m.fail("delete event", id, callerID, err)
	}
	m.log.Info("event deleted", "event", id, "owner", callerID)
	return nil
}

// Get returns one event. Owners see their own events in any state; other
// users only see events on offer.
func (m *Manager) Get(ctx context.Context, callerID, id string) (*model.Event, error) {
	if id == "" {
		return nil, apperr.New(apperr.InvalidArgument, "id required")
	}
	ev, err := m.store.EventByID(ctx, id)
	if err != nil {
		return nil, m.fail("get event", id, callerID, err)
	}
	if err := policy.MayViewEvent(callerID, ev).Err(); err != nil {
		return nil, m.fail("get event", id, callerID, err)
	}
	return ev, nil
}

func (m *Manager) ListMine(ctx context.Context, callerID string) ([]model.Event, error) {
	evs, err := m.store.ListEventsByOwner(ctx, callerID)
	if err != nil {
		m.log.Error("list events failed", "owner", callerID, "error", err)
		return nil, apperr.FromStore(err, "")
	}
	return evs, nil
}

// ListSwappable lists SWAPPABLE events owned by anyone but the caller.
func (m *Manager) ListSwappable(ctx context.Context, callerID string) ([]model.Event, error) {
	evs, err := m.store.ListSwappableEvents(ctx, callerID)
	if err != nil {
		m.log.Error("list swappable failed", "caller", callerID, "error", err)
		return nil, apperr.FromStore(err, "")
	}
	return evs, nil
}

func (m *Manager) fail(op, id, callerID string, err error) error {
	out := apperr.FromStore(err, "event not found")
	if apperr.HasCode(out, apperr.Transient) {
		m.log.Error(op+" failed", "event", id, "caller", callerID, "error", err)
	} else {
		m.log.Debug(op+" refused", "event", id, "caller", callerID, "reason", apperr.CodeOf(out))
	}
	return out
}
