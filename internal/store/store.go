// Package store persists users, events, swap requests and refresh tokens.
//
// Two backends implement Store: Postgres (pgx pool, row locks taken with
// SELECT ... FOR UPDATE) and SQLite (single connection, BEGIN IMMEDIATE).
// Every multi-row mutation goes through InTx so callers get all-or-nothing
// semantics; the Tx handle is only valid inside the callback.
//
// The events.owner_id foreign key is DEFERRABLE INITIALLY DEFERRED in both
// schemas. An owner exchange may park an event on a placeholder owner for the
// duration of a transaction; the reference is checked at commit.
package store

import (
	"context"
	"errors"
	"time"

	"slot-swapper-api/internal/model"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
	// ErrRetryable marks lock contention, deadlocks and serialization
	// failures. Nothing was committed; the whole operation may be retried.
	ErrRetryable = errors.New("store: retryable conflict")
)

type Direction int

const (
	Incoming Direction = iota // caller is the requestee
	Outgoing                  // caller is the requester
)

type RefreshToken struct {
	ID         string
	UserID     string
	TokenHash  string
	ExpiresAt  time.Time
	Revoked    bool
	ReplacedBy *string
	CreatedAt  time.Time
}

// Tx is the transactional view used by the slot and swap services.
// The *ForUpdate reads lock the row until the transaction ends.
type Tx interface {
	EventForUpdate(ctx context.Context, id string) (*model.Event, error)
	SwapRequestForUpdate(ctx context.Context, id string) (*model.SwapRequest, error)

	InsertEvent(ctx context.Context, e *model.Event) error
	UpdateEvent(ctx context.Context, e *model.Event) error
	DeleteEvent(ctx context.Context, id string, at time.Time) error
	SetEventStatus(ctx context.Context, status model.EventStatus, at time.Time, ids ...string) error
	SetEventOwner(ctx context.Context, id, ownerID string, at time.Time) error

	InsertSwapRequest(ctx context.Context, r *model.SwapRequest) error
	SetSwapRequestStatus(ctx context.Context, id string, status model.SwapStatus, at time.Time) error
}

type Store interface {
	// InTx runs fn in one transaction. A non-nil error from fn rolls back and
	// is returned unchanged.
	InTx(ctx context.Context, fn func(Tx) error) error
	Migrate(ctx context.Context) error
	Close() error

	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)

	CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error)
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error

	EventByID(ctx context.Context, id string) (*model.Event, error)
	ListEventsByOwner(ctx context.Context, ownerID string) ([]model.Event, error)
	ListSwappableEvents(ctx context.Context, excludeOwnerID string) ([]model.Event, error)

	SwapRequestByID(ctx context.Context, id string) (*model.SwapRequest, error)
	ListSwapRequests(ctx context.Context, userID string, dir Direction) ([]model.SwapRequestView, error)
}
