package rest

import (
	"time"

	"slot-swapper-api/internal/model"
)

type userJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type sessionJSON struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	User         userJSON `json:"user"`
}

type eventJSON struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	OwnerName string    `json:"ownerName,omitempty"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type slotJSON struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type swapRequestJSON struct {
	ID            string    `json:"id"`
	RequesterID   string    `json:"requesterId"`
	RequesteeID   string    `json:"requesteeId"`
	RequesterName string    `json:"requesterName,omitempty"`
	RequesteeName string    `json:"requesteeName,omitempty"`
	MySlotID      string    `json:"mySlotId"`
	TheirSlotID   string    `json:"theirSlotId"`
	MySlot        *slotJSON `json:"mySlot,omitempty"`
	TheirSlot     *slotJSON `json:"theirSlot,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toUser(u *model.User) userJSON {
	return userJSON{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toEvent(e *model.Event) eventJSON {
	return eventJSON{
		ID:        e.ID,
		OwnerID:   e.OwnerID,
		OwnerName: e.OwnerName,
		Title:     e.Title,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toEvents(evs []model.Event) []eventJSON {
	out := make([]eventJSON, len(evs))
	for i := range evs {
		out[i] = toEvent(&evs[i])
	}
	return out
}

func toSwapRequest(r *model.SwapRequest) swapRequestJSON {
	return swapRequestJSON{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		RequesteeID: r.RequesteeID,
		MySlotID:    r.MySlotID,
		TheirSlotID: r.TheirSlotID,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toSwapViews(vs []model.SwapRequestView) []swapRequestJSON {
	out := make([]swapRequestJSON, len(vs))
	for i := range vs {
		v := &vs[i]
		j := toSwapRequest(&v.SwapRequest)
		j.RequesterName = v.RequesterName
		j.RequesteeName = v.RequesteeName
		j.MySlot = &slotJSON{ID: v.MySlotID, Title: v.MySlotTitle, StartTime: v.MySlotStart, EndTime: v.MySlotEnd}
		j.TheirSlot = &slotJSON{ID: v.TheirSlotID, Title: v.TheirSlotTitle, StartTime: v.TheirSlotStart, EndTime: v.TheirSlotEnd}
		out[i] = j
	}
	return out
}
