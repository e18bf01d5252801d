package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slot-swapper-api/internal/model"
	"slot-swapper-api/internal/store"
	"slot-swapper-api/internal/testutil"
)

func newUser(t *testing.T, st store.Store, name string) *model.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	u := &model.User{
		ID:           uuid.New().String(),
		Email:        name + "-" + uuid.New().String()[:8] + "@test.com",
		PasswordHash: "hash",
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func newEvent(t *testing.T, st store.Store, owner string, status model.EventStatus) *model.Event {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	e := &model.Event{
		ID:        uuid.New().String(),
		OwnerID:   owner,
		Title:     "slot",
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(2 * time.Hour),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.InTx(context.Background(), func(tx store.Tx) error {
		return tx.InsertEvent(context.Background(), e)
	}))
	return e
}

func TestMigrateIdempotent(t *testing.T) {
	testutil.EachStore(t, func(t *testing.T, st store.Store) {
		require.NoError(t, st.Migrate(context.Background()))
	})
}

func TestUsers(t *testing.T) {
	testutil.EachStore(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		u := newUser(t, st, "ada")

		got, err := st.UserByEmail(ctx, u.Email)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.True(t, got.CreatedAt.Equal(u.CreatedAt))

		_, err = st.UserByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, store.ErrNotFound)

		dup := *u
		dup.ID = uuid.New().String()
		err = st.CreateUser(ctx, &dup)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})
}

func TestTxRollback(t *testing.T) {
	testutil.EachStore(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		u := newUser(t, st, "ada")
		ev := newEvent(t, st, u.ID, model.StatusBusy)
		boom := errors.New("boom")

		err := st.InTx(ctx, func(tx store.Tx) error {
			if err := tx.SetEventStatus(ctx, model.StatusSwappable, time.Now(), ev.ID); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := st.EventByID(ctx, ev.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusBusy, got.Status)
	})
}

func TestDeferredOwnerCheck(t *testing.T) {
	testutil.EachStore(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		a := newUser(t, st, "a")
		b := newUser(t, st, "b")
		ea := newEvent(t, st, a.ID, model.StatusSwapPending)
		eb := newEvent(t, st, b.ID, model.StatusSwapPending)

		// a placeholder owner is fine as long as it is gone by commit
		err := st.InTx(ctx, func(tx store.Tx) error {
			now := time.Now()
			if err := tx.SetEventOwner(ctx, ea.ID, "swap:tmp", now); err != nil {
				return err
			}
			if err := tx.SetEventOwner(ctx, eb.ID, a.ID, now); err != nil {
				return err
			}
			return tx.SetEventOwner(ctx, ea.ID, b.ID, now)
		})
		require.NoError(t, err)

		got, err := st.EventByID(ctx, ea.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.OwnerID)

		// left dangling, commit must fail
		err = st.InTx(ctx, func(tx store.Tx) error {
			return tx.SetEventOwner(ctx, ea.ID, "swap:dangling", time.Now())
		})
		assert.Error(t, err)
		got, err = st.EventByID(ctx, ea.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.OwnerID)
	})
}

func TestPendingSlotUnique(t *testing.T) {
	testutil.EachStore(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		a := newUser(t, st, "a")
		b := newUser(t, st, "b")
		c := newUser(t, st, "c")
		target := newEvent(t, st, b.ID, model.StatusSwappable)
		offerA := newEvent(t, st, a.ID, model.StatusSwappable)
		offerC := newEvent(t, st, c.ID, model.StatusSwappable)

		insert := func(requester string, mine string) error {
			now := time.Now().UTC()
			return st.InTx(ctx, func(tx store.Tx) error {
				return tx.InsertSwapRequest(ctx, &model.SwapRequest{
					ID: uuid.New().String(), RequesterID: requester, RequesteeID: b.ID,
					MySlotID: mine, TheirSlotID: target.ID, Status: model.SwapPending,
					CreatedAt: now, UpdatedAt: now,
				})
			})
		}
		require.NoError(t, insert(a.ID, offerA.ID))
		assert.ErrorIs(t, insert(c.ID, offerC.ID), store.ErrDuplicate)
	})
}

func TestSoftDelete(t *testing.T) {
	testutil.EachStore(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		u := newUser(t, st, "ada")
		ev := newEvent(t, st, u.ID, model.StatusBusy)

		require.NoError(t, st.InTx(ctx, func(tx store.Tx) error {
			return tx.DeleteEvent(ctx, ev.ID, time.Now())
		}))
		_, err := st.EventByID(ctx, ev.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)

		err = st.InTx(ctx, func(tx store.Tx) error {
			_, err := tx.EventForUpdate(ctx, ev.ID)
			return err
		})
		assert.ErrorIs(t, err, store.ErrNotFound)

		evs, err := st.ListEventsByOwner(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, evs)
	})
}

func TestSwapRequestViews(t *testing.T) {
	testutil.EachStore(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		a := newUser(t, st, "alice")
		b := newUser(t, st, "bob")
		ea := newEvent(t, st, a.ID, model.StatusSwapPending)
		eb := newEvent(t, st, b.ID, model.StatusSwapPending)
		now := time.Now().UTC().Truncate(time.Second)
		req := &model.SwapRequest{
			ID: uuid.New().String(), RequesterID: a.ID, RequesteeID: b.ID,
			MySlotID: ea.ID, TheirSlotID: eb.ID, Status: model.SwapPending,
			CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, st.InTx(ctx, func(tx store.Tx) error {
			return tx.InsertSwapRequest(ctx, req)
		}))

		got, err := st.SwapRequestByID(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, model.SwapPending, got.Status)

		in, err := st.ListSwapRequests(ctx, b.ID, store.Incoming)
		require.NoError(t, err)
		require.Len(t, in, 1)
		assert.Equal(t, "alice", in[0].RequesterName)
		assert.Equal(t, "bob", in[0].RequesteeName)
		assert.True(t, in[0].MySlotStart.Equal(ea.StartTime))
		assert.True(t, in[0].TheirSlotEnd.Equal(eb.EndTime))

		out, err := st.ListSwapRequests(ctx, b.ID, store.Outgoing)
		require.NoError(t, err)
		assert.Empty(t, out)

		out, err = st.ListSwapRequests(ctx, a.ID, store.Outgoing)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, req.ID, out[0].ID)
	})
}

func TestRefreshTokens(t *testing.T) {
	testutil.EachStore(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		u := newUser(t, st, "ada")
		hash := uuid.New().String()
		id, err := st.CreateRefreshToken(ctx, u.ID, hash, time.Now().Add(time.Hour))
		require.NoError(t, err)

		rt, err := st.GetRefreshTokenByHash(ctx, hash)
		require.NoError(t, err)
		assert.Equal(t, id, rt.ID)
		assert.False(t, rt.Revoked)

		newID, newHash := uuid.New().String(), uuid.New().String()
		require.NoError(t, st.RotateRefreshToken(ctx, id, newID, u.ID, newHash, time.Now().Add(time.Hour)))

		old, err := st.GetRefreshTokenByHash(ctx, hash)
		require.NoError(t, err)
		assert.True(t, old.Revoked)
		require.NotNil(t, old.ReplacedBy)
		assert.Equal(t, newID, *old.ReplacedBy)

		// a second rotation of the same token loses
		err = st.RotateRefreshToken(ctx, id, uuid.New().String(), u.ID, uuid.New().String(), time.Now().Add(time.Hour))
		assert.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, st.RevokeAllRefreshTokens(ctx, u.ID))
		cur, err := st.GetRefreshTokenByHash(ctx, newHash)
		require.NoError(t, err)
		assert.True(t, cur.Revoked)
	})
}
