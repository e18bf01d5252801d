package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"slot-swapper-api/internal/model"
)

// SQLite is the embedded Store used for local runs and tests.
//
// The database is configured with:
//   - a single connection, so transactions are serialized in-process
//   - BEGIN IMMEDIATE (_txlock=immediate), taking the write lock up front
//   - WAL mode and a 5 second busy timeout for other processes
//   - foreign key enforcement
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragma: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) Migrate(ctx context.Context) error {
	ddl, err := migrations.ReadFile("migrations/001_init.sqlite.sql")
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, string(ddl)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

func (s *SQLite) InTx(ctx context.Context, fn func(Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", liteErr(err))
	}
	defer tx.Rollback() // no-op after commit

	if err := fn(&liteTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", liteErr(err))
	}
	return nil
}

func liteErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var le sqlite3.Error
	if errors.As(err, &le) {
		switch {
		case le.ExtendedCode == sqlite3.ErrConstraintUnique, le.ExtendedCode == sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %s", ErrDuplicate, le.Error())
		case le.Code == sqlite3.ErrBusy, le.Code == sqlite3.ErrLocked:
			return fmt.Errorf("%w: %s", ErrRetryable, le.Error())
		}
	}
	return err
}

func affected(res sql.Result, err error, want int64) error {
	if err != nil {
		return liteErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	return expectRows(n, want)
}

type liteTx struct {
	tx *sql.Tx
}

// SQLite has no FOR UPDATE; the IMMEDIATE transaction already holds the
// database write lock.
func (t *liteTx) EventForUpdate(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanEvent(t.tx.QueryRowContext(ctx,
		`SELECT `+eventCols+` FROM events WHERE id = ? AND deleted_at IS NULL`, id))
	if err != nil {
		return nil, liteErr(err)
	}
	return e, nil
}

func (t *liteTx) SwapRequestForUpdate(ctx context.Context, id string) (*model.SwapRequest, error) {
	r, err := scanSwapRequest(t.tx.QueryRowContext(ctx,
		`SELECT `+swapCols+` FROM swap_requests WHERE id = ?`, id))
	if err != nil {
		return nil, liteErr(err)
	}
	return r, nil
}

func (t *liteTx) InsertEvent(ctx context.Context, e *model.Event) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO events (id, owner_id, title, start_time, end_time, status, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?)`,
		e.ID, e.OwnerID, e.Title, e.StartTime.UTC(), e.EndTime.UTC(), string(e.Status), e.CreatedAt.UTC(), e.UpdatedAt.UTC(),
	)
	return liteErr(err)
}

func (t *liteTx) UpdateEvent(ctx context.Context, e *model.Event) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE events SET title=?, start_time=?, end_time=?, status=?, updated_at=?
		 WHERE id=? AND deleted_at IS NULL`,
		e.Title, e.StartTime.UTC(), e.EndTime.UTC(), string(e.Status), e.UpdatedAt.UTC(), e.ID,
	)
	return affected(res, err, 1)
}

func (t *liteTx) DeleteEvent(ctx context.Context, id string, at time.Time) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE events SET deleted_at=?, updated_at=? WHERE id=? AND deleted_at IS NULL`, at.UTC(), at.UTC(), id)
	return affected(res, err, 1)
}

func (t *liteTx) SetEventStatus(ctx context.Context, status model.EventStatus, at time.Time, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	args := []any{string(status), at.UTC()}
	for _, id := range ids {
		args = append(args, id)
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	res, err := t.tx.ExecContext(ctx,
		`UPDATE events SET status=?, updated_at=? WHERE id IN (`+marks+`)`, args...)
	return affected(res, err, int64(len(ids)))
}

func (t *liteTx) SetEventOwner(ctx context.Context, id, ownerID string, at time.Time) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE events SET owner_id=?, updated_at=? WHERE id=?`, ownerID, at.UTC(), id)
	return affected(res, err, 1)
}

func (t *liteTx) InsertSwapRequest(ctx context.Context, r *model.SwapRequest) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO swap_requests (`+swapCols+`) VALUES (?,?,?,?,?,?,?,?)`,
		r.ID, r.RequesterID, r.RequesteeID, r.MySlotID, r.TheirSlotID, string(r.Status), r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
	)
	return liteErr(err)
}

func (t *liteTx) SetSwapRequestStatus(ctx context.Context, id string, status model.SwapStatus, at time.Time) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE swap_requests SET status=?, updated_at=? WHERE id=?`, string(status), at.UTC(), id)
	return affected(res, err, 1)
}

func (s *SQLite) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, name, created_at, updated_at) VALUES (?,?,?,?,?,?)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return liteErr(err)
}

func (s *SQLite) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE email = ?`, email))
	if err != nil {
		return nil, liteErr(err)
	}
	return u, nil
}

func (s *SQLite) UserByID(ctx context.Context, id string) (*model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id = ?`, id))
	if err != nil {
		return nil, liteErr(err)
	}
	return u, nil
}

func (s *SQLite) CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at) VALUES (?,?,?,?,?)`,
		id, userID, tokenHash, expiresAt.UTC(), time.Now().UTC(),
	)
	return id, liteErr(err)
}

func (s *SQLite) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	rt := &RefreshToken{}
	var replaced sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, revoked, replaced_by, created_at
		 FROM refresh_tokens WHERE token_hash = ?`, tokenHash,
	).Scan(&rt.ID, &rt.UserID, &rt.TokenHash, &rt.ExpiresAt, &rt.Revoked, &replaced, &rt.CreatedAt)
	if err != nil {
		return nil, liteErr(err)
	}
	if replaced.Valid {
		rt.ReplacedBy = &replaced.String
	}
	return rt, nil
}

func (s *SQLite) RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return liteErr(err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1, replaced_by = ? WHERE id = ? AND revoked = 0`, newID, oldID)
	if err := affected(res, err, 1); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at) VALUES (?,?,?,?,?)`,
		newID, userID, newHash, newExpiry.UTC(), time.Now().UTC(),
	)
	if err != nil {
		return liteErr(err)
	}
	return liteErr(tx.Commit())
}

func (s *SQLite) RevokeAllRefreshTokens(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1 WHERE user_id = ? AND revoked = 0`, userID)
	return liteErr(err)
}

func (s *SQLite) EventByID(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanEvent(s.db.QueryRowContext(ctx,
		`SELECT `+eventCols+` FROM events WHERE id = ? AND deleted_at IS NULL`, id))
	if err != nil {
		return nil, liteErr(err)
	}
	return e, nil
}

func (s *SQLite) ListEventsByOwner(ctx context.Context, ownerID string) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventCols+` FROM events
		 WHERE owner_id = ? AND deleted_at IS NULL
		 ORDER BY start_time, id`, ownerID)
	if err != nil {
		return nil, liteErr(err)
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *SQLite) ListSwappableEvents(ctx context.Context, excludeOwnerID string) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.owner_id, e.title, e.start_time, e.end_time, e.status, e.created_at, e.updated_at, u.name
		 FROM events e
		 JOIN users u ON u.id = e.owner_id
		 WHERE e.status = 'SWAPPABLE' AND e.owner_id <> ? AND e.deleted_at IS NULL
		 ORDER BY e.start_time, e.id`, excludeOwnerID)
	if err != nil {
		return nil, liteErr(err)
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var owner string
		e, err := scanEvent(rows, &owner)
		if err != nil {
			return nil, err
		}
		e.OwnerName = owner
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *SQLite) SwapRequestByID(ctx context.Context, id string) (*model.SwapRequest, error) {
	r, err := scanSwapRequest(s.db.QueryRowContext(ctx, `SELECT `+swapCols+` FROM swap_requests WHERE id = ?`, id))
	if err != nil {
		return nil, liteErr(err)
	}
	return r, nil
}

func (s *SQLite) ListSwapRequests(ctx context.Context, userID string, dir Direction) ([]model.SwapRequestView, error) {
	rows, err := s.db.QueryContext(ctx,
		viewSelect+` WHERE `+directionColumn(dir)+` = ? ORDER BY sr.created_at DESC, sr.id`, userID)
	if err != nil {
		return nil, liteErr(err)
	}
	defer rows.Close()

	var out []model.SwapRequestView
	for rows.Next() {
		v, err := scanSwapView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
