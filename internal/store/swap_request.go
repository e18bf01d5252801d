package store

import (
	"context"

	"slot-swapper-api/internal/model"
)

func (s *Postgres) SwapRequestByID(ctx context.Context, id string) (*model.SwapRequest, error) {
	r, err := scanSwapRequest(s.pool.QueryRow(ctx,
		`SELECT `+swapCols+` FROM swap_requests WHERE id = $1`, id))
	if err != nil {
		return nil, pgErr(err)
	}
	return r, nil
}

func (s *Postgres) ListSwapRequests(ctx context.Context, userID string, dir Direction) ([]model.SwapRequestView, error) {
	rows, err := s.pool.Query(ctx,
		viewSelect+` WHERE `+directionColumn(dir)+` = $1 ORDER BY sr.created_at DESC, sr.id`, userID)
	if err != nil {
		return nil, pgErr(err)
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
