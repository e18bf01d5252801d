package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"slot-swapper-api/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Postgres is the production Store. Transactions run at READ COMMITTED;
// correctness under concurrency comes from the row locks taken by the
// *ForUpdate reads, after which statuses are re-checked by the caller.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) Close() error {
	s.pool.Close()
	return nil
}

func (s *Postgres) Migrate(ctx context.Context) error {
	ddl, err := migrations.ReadFile("migrations/001_init.postgres.sql")
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := s.pool.Exec(ctx, string(ddl)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

func (s *Postgres) InTx(ctx context.Context, fn func(Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin: %w", pgErr(err))
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", pgErr(err))
	}
	return nil
}

// pgErr folds driver errors into the package sentinels.
func pgErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		switch pe.Code {
		case "23505":
			return fmt.Errorf("%w: %s", ErrDuplicate, pe.ConstraintName)
		case "40001", "40P01", "55P03":
			return fmt.Errorf("%w: %s", ErrRetryable, pe.Message)
		}
	}
	return err
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) EventForUpdate(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanEvent(t.tx.QueryRow(ctx,
		`SELECT `+eventCols+` FROM events WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id))
	if err != nil {
		return nil, pgErr(err)
	}
	return e, nil
}

func (t *pgTx) SwapRequestForUpdate(ctx context.Context, id string) (*model.SwapRequest, error) {
	r, err := scanSwapRequest(t.tx.QueryRow(ctx,
		`SELECT `+swapCols+` FROM swap_requests WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, pgErr(err)
	}
	return r, nil
}

func (t *pgTx) InsertEvent(ctx context.Context, e *model.Event) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO events (id, owner_id, title, start_time, end_time, status, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		e.ID, e.OwnerID, e.Title, e.StartTime, e.EndTime, string(e.Status), e.CreatedAt, e.UpdatedAt,
	)
	return pgErr(err)
}

func (t *pgTx) UpdateEvent(ctx context.Context, e *model.Event) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE events SET title=$1, start_time=$2, end_time=$3, status=$4, updated_at=$5
		 WHERE id=$6 AND deleted_at IS NULL`,
		e.Title, e.StartTime, e.EndTime, string(e.Status), e.UpdatedAt, e.ID,
	)
	if err != nil {
		return pgErr(err)
	}
	return expectRows(tag.RowsAffected(), 1)
}

func (t *pgTx) DeleteEvent(ctx context.Context, id string, at time.Time) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE events SET deleted_at=$1, updated_at=$1 WHERE id=$2 AND deleted_at IS NULL`, at, id)
	if err != nil {
		return pgErr(err)
	}
	return expectRows(tag.RowsAffected(), 1)
}

func (t *pgTx) SetEventStatus(ctx context.Context, status model.EventStatus, at time.Time, ids ...string) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE events SET status=$1, updated_at=$2 WHERE id = ANY($3)`, string(status), at, ids)
	if err != nil {
		return pgErr(err)
	}
	return expectRows(tag.RowsAffected(), int64(len(ids)))
}

func (t *pgTx) SetEventOwner(ctx context.Context, id, ownerID string, at time.Time) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE events SET owner_id=$1, updated_at=$2 WHERE id=$3`, ownerID, at, id)
	if err != nil {
		return pgErr(err)
	}
	return expectRows(tag.RowsAffected(), 1)
}

func (t *pgTx) InsertSwapRequest(ctx context.Context, r *model.SwapRequest) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO swap_requests (`+swapCols+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		r.ID, r.RequesterID, r.RequesteeID, r.MySlotID, r.TheirSlotID, string(r.Status), r.CreatedAt, r.UpdatedAt,
	)
	return pgErr(err)
}

func (t *pgTx) SetSwapRequestStatus(ctx context.Context, id string, status model.SwapStatus, at time.Time) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE swap_requests SET status=$1, updated_at=$2 WHERE id=$3`, string(status), at, id)
	if err != nil {
		return pgErr(err)
	}
	return expectRows(tag.RowsAffected(), 1)
}

func expectRows(got, want int64) error {
	if got != want {
		return fmt.Errorf("%w: %d of %d rows updated", ErrNotFound, got, want)
	}
	return nil
}
