package store

import (
	"slot-swapper-api/internal/model"
)

// scanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const (
	userCols  = `id, email, password_hash, name, created_at, updated_at`
	eventCols = `id, owner_id, title, start_time, end_time, status, created_at, updated_at`
	swapCols  = `id, requester_id, requestee_id, my_slot_id, their_slot_id, status, created_at, updated_at`

	viewSelect = `SELECT sr.id, sr.requester_id, sr.requestee_id, sr.my_slot_id, sr.their_slot_id,
	        sr.status, sr.created_at, sr.updated_at,
	        u1.name, u2.name,
	        e1.title, e1.start_time, e1.end_time,
	        e2.title, e2.start_time, e2.end_time
	 FROM swap_requests sr
	 JOIN users u1 ON u1.id = sr.requester_id
	 JOIN users u2 ON u2.id = sr.requestee_id
	 JOIN events e1 ON e1.id = sr.my_slot_id
	 JOIN events e2 ON e2.id = sr.their_slot_id`
)

func scanUser(row scanner) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func scanEvent(row scanner, extra ...any) (*model.Event, error) {
	e := &model.Event{}
	var status string
	dest := append([]any{&e.ID, &e.OwnerID, &e.Title, &e.StartTime, &e.EndTime, &status, &e.CreatedAt, &e.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	e.Status = model.EventStatus(status)
	return e, nil
}

func scanSwapRequest(row scanner) (*model.SwapRequest, error) {
	r := &model.SwapRequest{}
	var status string
	if err := row.Scan(&r.ID, &r.RequesterID, &r.RequesteeID, &r.MySlotID, &r.TheirSlotID,
		&status, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Status = model.SwapStatus(status)
	return r, nil
}

func scanSwapView(row scanner) (model.SwapRequestView, error) {
	var v model.SwapRequestView
	var status string
	err := row.Scan(&v.ID, &v.RequesterID, &v.RequesteeID, &v.MySlotID, &v.TheirSlotID,
		&status, &v.CreatedAt, &v.UpdatedAt,
		&v.RequesterName, &v.RequesteeName,
		&v.MySlotTitle, &v.MySlotStart, &v.MySlotEnd,
		&v.TheirSlotTitle, &v.TheirSlotStart, &v.TheirSlotEnd,
	)
	v.Status = model.SwapStatus(status)
	return v, err
}

func directionColumn(dir Direction) string {
	if dir == Outgoing {
		return "sr.requester_id"
	}
	return "sr.requestee_id"
}
