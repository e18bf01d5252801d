package store

import (
	"context"

	"slot-swapper-api/internal/model"
)

func (s *Postgres) EventByID(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanEvent(s.pool.QueryRow(ctx,
		`SELECT `+eventCols+` FROM events WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		return nil, pgErr(err)
	}
	return e, nil
}

func (s *Postgres) ListEventsByOwner(ctx context.Context, ownerID string) ([]model.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventCols+` FROM events
		 WHERE owner_id = $1 AND deleted_at IS NULL
		 ORDER BY start_time, id`, ownerID,
	)
	if err != nil {
		return nil, pgErr(err)
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

// other users' SWAPPABLE events, with the owner's display name
func (s *Postgres) ListSwappableEvents(ctx context.Context, excludeOwnerID string) ([]model.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT e.id, e.owner_id, e.title, e.start_time, e.end_time, e.status, e.created_at, e.updated_at, u.name
		 FROM events e
		 JOIN users u ON u.id = e.owner_id
		 WHERE e.status = 'SWAPPABLE' AND e.owner_id <> $1 AND e.deleted_at IS NULL
		 ORDER BY e.start_time, e.id`, excludeOwnerID,
	)
	if err != nil {
		return nil, pgErr(err)
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
