package pb

import (
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ----- accounts -----

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

func (m *RegisterRequest) marshal(b []byte) []byte {
	b = appendString(b, 1, m.Email)
	b = appendString(b, 2, m.Password)
	return appendString(b, 3, m.Name)
}

func (m *RegisterRequest) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.Email)
		case 2:
			return readString(typ, b, &m.Password)
		case 3:
			return readString(typ, b, &m.Name)
		}
		return 0
	})
}

type RegisterResponse struct {
	UserId string
	Token  string
	Name   string
}

func (m *RegisterResponse) marshal(b []byte) []byte {
	b = appendString(b, 1, m.UserId)
	b = appendString(b, 2, m.Token)
	return appendString(b, 3, m.Name)
}

func (m *RegisterResponse) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.UserId)
		case 2:
			return readString(typ, b, &m.Token)
		case 3:
			return readString(typ, b, &m.Name)
		}
		return 0
	})
}

type LoginRequest struct {
	Email    string
	Password string
}

func (m *LoginRequest) marshal(b []byte) []byte {
	b = appendString(b, 1, m.Email)
	return appendString(b, 2, m.Password)
}

func (m *LoginRequest) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.Email)
		case 2:
			return readString(typ, b, &m.Password)
		}
		return 0
	})
}

type LoginResponse struct {
	Token  string
	UserId string
	Name   string
}

func (m *LoginResponse) marshal(b []byte) []byte {
	b = appendString(b, 1, m.Token)
	b = appendString(b, 2, m.UserId)
	return appendString(b, 3, m.Name)
}

func (m *LoginResponse) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.Token)
		case 2:
			return readString(typ, b, &m.UserId)
		case 3:
			return readString(typ, b, &m.Name)
		}
		return 0
	})
}

type MeRequest struct{}

func (m *MeRequest) marshal(b []byte) []byte { return b }
func (m *MeRequest) unmarshal(b []byte) error {
	return walk(b, func(protowire.Number, protowire.Type, []byte) int { return 0 })
}

type MeResponse struct {
	UserId string
	Email  string
	Name   string
}

func (m *MeResponse) marshal(b []byte) []byte {
	b = appendString(b, 1, m.UserId)
	b = appendString(b, 2, m.Email)
	return appendString(b, 3, m.Name)
}

func (m *MeResponse) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.UserId)
		case 2:
			return readString(typ, b, &m.Email)
		case 3:
			return readString(typ, b, &m.Name)
		}
		return 0
	})
}

// ----- events -----

type Event struct {
	Id        string
	OwnerId   string
	Title     string
	StartTime *timestamppb.Timestamp
	EndTime   *timestamppb.Timestamp
	Status    string
	OwnerName string
	CreatedAt *timestamppb.Timestamp
	UpdatedAt *timestamppb.Timestamp
}

func (m *Event) marshal(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.OwnerId)
	b = appendString(b, 3, m.Title)
	b = appendTime(b, 4, m.StartTime)
	b = appendTime(b, 5, m.EndTime)
	b = appendString(b, 6, m.Status)
	b = appendString(b, 7, m.OwnerName)
	b = appendTime(b, 8, m.CreatedAt)
	return appendTime(b, 9, m.UpdatedAt)
}

func (m *Event) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.Id)
		case 2:
			return readString(typ, b, &m.OwnerId)
		case 3:
			return readString(typ, b, &m.Title)
		case 4:
			return readTime(typ, b, &m.StartTime)
		case 5:
			return readTime(typ, b, &m.EndTime)
		case 6:
			return readString(typ, b, &m.Status)
		case 7:
			return readString(typ, b, &m.OwnerName)
		case 8:
			return readTime(typ, b, &m.CreatedAt)
		case 9:
			return readTime(typ, b, &m.UpdatedAt)
		}
		return 0
	})
}

type ListEventsRequest struct{}

func (m *ListEventsRequest) marshal(b []byte) []byte { return b }
func (m *ListEventsRequest) unmarshal(b []byte) error {
	return walk(b, func(protowire.Number, protowire.Type, []byte) int { return 0 })
}

type ListEventsResponse struct {
	Events []*Event
}

func (m *ListEventsResponse) marshal(b []byte) []byte {
	for _, e := range m.Events {
		b = appendMessage(b, 1, e)
	}
	return b
}

func (m *ListEventsResponse) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readMessage(typ, b, func(e *Event) { m.Events = append(m.Events, e) })
		}
		return 0
	})
}

type CreateEventRequest struct {
	Title     string
	StartTime *timestamppb.Timestamp
	EndTime   *timestamppb.Timestamp
	Status    string
}

func (m *CreateEventRequest) marshal(b []byte) []byte {
	b = appendString(b, 1, m.Title)
	b = appendTime(b, 2, m.StartTime)
	b = appendTime(b, 3, m.EndTime)
	return appendString(b, 4, m.Status)
}

func (m *CreateEventRequest) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.Title)
		case 2:
			return readTime(typ, b, &m.StartTime)
		case 3:
			return readTime(typ, b, &m.EndTime)
		case 4:
			return readString(typ, b, &m.Status)
		}
		return 0
	})
}

type CreateEventResponse struct {
	Event *Event
}

func (m *CreateEventResponse) marshal(b []byte) []byte {
	if m.Event == nil {
		return b
	}
	return appendMessage(b, 1, m.Event)
}

func (m *CreateEventResponse) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readMessage(typ, b, func(e *Event) { m.Event = e })
		}
		return 0
	})
}

// UpdateEventRequest carries only the fields to change; unset fields keep
// their stored value.
type UpdateEventRequest struct {
	Id        string
	Title     *string
	StartTime *timestamppb.Timestamp
	EndTime   *timestamppb.Timestamp
	Status    *string
}

func (m *UpdateEventRequest) marshal(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendOptString(b, 2, m.Title)
	b = appendTime(b, 3, m.StartTime)
	b = appendTime(b, 4, m.EndTime)
	return appendOptString(b, 5, m.Status)
}

func (m *UpdateEventRequest) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.Id)
		case 2:
			return readOptString(typ, b, &m.Title)
		case 3:
			return readTime(typ, b, &m.StartTime)
		case 4:
			return readTime(typ, b, &m.EndTime)
		case 5:
			return readOptString(typ, b, &m.Status)
		}
		return 0
	})
}

type UpdateEventResponse struct {
	Event *Event
}

func (m *UpdateEventResponse) marshal(b []byte) []byte {
	if m.Event == nil {
		return b
	}
	return appendMessage(b, 1, m.Event)
}

func (m *UpdateEventResponse) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readMessage(typ, b, func(e *Event) { m.Event = e })
		}
		return 0
	})
}

type DeleteEventRequest struct {
	Id string
}

func (m *DeleteEventRequest) marshal(b []byte) []byte { return appendString(b, 1, m.Id) }

func (m *DeleteEventRequest) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readString(typ, b, &m.Id)
		}
		return 0
	})
}

type DeleteEventResponse struct{}

func (m *DeleteEventResponse) marshal(b []byte) []byte { return b }
func (m *DeleteEventResponse) unmarshal(b []byte) error {
	return walk(b, func(protowire.Number, protowire.Type, []byte) int { return 0 })
}

type GetEventRequest struct {
	Id string
}

func (m *GetEventRequest) marshal(b []byte) []byte { return appendString(b, 1, m.Id) }

func (m *GetEventRequest) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readString(typ, b, &m.Id)
		}
		return 0
	})
}

type GetEventResponse struct {
	Event *Event
}

func (m *GetEventResponse) marshal(b []byte) []byte {
	if m.Event == nil {
		return b
	}
	return appendMessage(b, 1, m.Event)
}

func (m *GetEventResponse) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readMessage(typ, b, func(e *Event) { m.Event = e })
		}
		return 0
	})
}

type ListSwappableSlotsRequest struct{}

func (m *ListSwappableSlotsRequest) marshal(b []byte) []byte { return b }
func (m *ListSwappableSlotsRequest) unmarshal(b []byte) error {
	return walk(b, func(protowire.Number, protowire.Type, []byte) int { return 0 })
}

type ListSwappableSlotsResponse struct {
	Slots []*Event
}

func (m *ListSwappableSlotsResponse) marshal(b []byte) []byte {
	for _, e := range m.Slots {
		b = appendMessage(b, 1, e)
	}
	return b
}

func (m *ListSwappableSlotsResponse) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readMessage(typ, b, func(e *Event) { m.Slots = append(m.Slots, e) })
		}
		return 0
	})
}

// ----- swap requests -----

// SwapRequest is a request joined with its parties and slots. The joined
// fields are only filled by ListSwapRequests.
type SwapRequest struct {
	Id             string
	RequesterId    string
	RequesteeId    string
	MySlotId       string
	TheirSlotId    string
	Status         string
	CreatedAt      *timestamppb.Timestamp
	UpdatedAt      *timestamppb.Timestamp
	RequesterName  string
	RequesteeName  string
	MySlotTitle    string
	MySlotStart    *timestamppb.Timestamp
	MySlotEnd      *timestamppb.Timestamp
	TheirSlotTitle string
	TheirSlotStart *timestamppb.Timestamp
	TheirSlotEnd   *timestamppb.Timestamp
}

func (m *SwapRequest) marshal(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.RequesterId)
	b = appendString(b, 3, m.RequesteeId)
	b = appendString(b, 4, m.MySlotId)
	b = appendString(b, 5, m.TheirSlotId)
	b = appendString(b, 6, m.Status)
	b = appendTime(b, 7, m.CreatedAt)
	b = appendTime(b, 8, m.UpdatedAt)
	b = appendString(b, 9, m.RequesterName)
	b = appendString(b, 10, m.RequesteeName)
	b = appendString(b, 11, m.MySlotTitle)
	b = appendTime(b, 12, m.MySlotStart)
	b = appendTime(b, 13, m.MySlotEnd)
	b = appendString(b, 14, m.TheirSlotTitle)
	b = appendTime(b, 15, m.TheirSlotStart)
	return appendTime(b, 16, m.TheirSlotEnd)
}

func (m *SwapRequest) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.Id)
		case 2:
			return readString(typ, b, &m.RequesterId)
		case 3:
			return readString(typ, b, &m.RequesteeId)
		case 4:
			return readString(typ, b, &m.MySlotId)
		case 5:
			return readString(typ, b, &m.TheirSlotId)
		case 6:
			return readString(typ, b, &m.Status)
		case 7:
			return readTime(typ, b, &m.CreatedAt)
		case 8:
			return readTime(typ, b, &m.UpdatedAt)
		case 9:
			return readString(typ, b, &m.RequesterName)
		case 10:
			return readString(typ, b, &m.RequesteeName)
		case 11:
			return readString(typ, b, &m.MySlotTitle)
		case 12:
			return readTime(typ, b, &m.MySlotStart)
		case 13:
			return readTime(typ, b, &m.MySlotEnd)
		case 14:
			return readString(typ, b, &m.TheirSlotTitle)
		case 15:
			return readTime(typ, b, &m.TheirSlotStart)
		case 16:
			return readTime(typ, b, &m.TheirSlotEnd)
		}
		return 0
	})
}

type CreateSwapRequestRequest struct {
	MySlotId    string
	TheirSlotId string
}

func (m *CreateSwapRequestRequest) marshal(b []byte) []byte {
	b = appendString(b, 1, m.MySlotId)
	return appendString(b, 2, m.TheirSlotId)
}

func (m *CreateSwapRequestRequest) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.MySlotId)
		case 2:
			return readString(typ, b, &m.TheirSlotId)
		}
		return 0
	})
}

type CreateSwapRequestResponse struct {
	Request *SwapRequest
}

func (m *CreateSwapRequestResponse) marshal(b []byte) []byte {
	if m.Request == nil {
		return b
	}
	return appendMessage(b, 1, m.Request)
}

func (m *CreateSwapRequestResponse) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readMessage(typ, b, func(r *SwapRequest) { m.Request = r })
		}
		return 0
	})
}

type GetSwapRequestRequest struct {
	Id string
}

func (m *GetSwapRequestRequest) marshal(b []byte) []byte { return appendString(b, 1, m.Id) }

func (m *GetSwapRequestRequest) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readString(typ, b, &m.Id)
		}
		return 0
	})
}

type GetSwapRequestResponse struct {
	Request *SwapRequest
}

func (m *GetSwapRequestResponse) marshal(b []byte) []byte {
	if m.Request == nil {
		return b
	}
	return appendMessage(b, 1, m.Request)
}

func (m *GetSwapRequestResponse) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readMessage(typ, b, func(r *SwapRequest) { m.Request = r })
		}
		return 0
	})
}

type RespondToSwapRequestRequest struct {
	RequestId string
	Accept    bool
}

func (m *RespondToSwapRequestRequest) marshal(b []byte) []byte {
	b = appendString(b, 1, m.RequestId)
	return appendBool(b, 2, m.Accept)
}

func (m *RespondToSwapRequestRequest) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.RequestId)
		case 2:
			return readBool(typ, b, &m.Accept)
		}
		return 0
	})
}

type RespondToSwapRequestResponse struct {
	Status string
}

func (m *RespondToSwapRequestResponse) marshal(b []byte) []byte { return appendString(b, 1, m.Status) }

func (m *RespondToSwapRequestResponse) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readString(typ, b, &m.Status)
		}
		return 0
	})
}

type ListSwapRequestsRequest struct{}

func (m *ListSwapRequestsRequest) marshal(b []byte) []byte { return b }
func (m *ListSwapRequestsRequest) unmarshal(b []byte) error {
	return walk(b, func(protowire.Number, protowire.Type, []byte) int { return 0 })
}

type ListSwapRequestsResponse struct {
	Incoming []*SwapRequest
	Outgoing []*SwapRequest
}

func (m *ListSwapRequestsResponse) marshal(b []byte) []byte {
	for _, r := range m.Incoming {
		b = appendMessage(b, 1, r)
	}
	for _, r := range m.Outgoing {
		b = appendMessage(b, 2, r)
	}
	return b
}

func (m *ListSwapRequestsResponse) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readMessage(typ, b, func(r *SwapRequest) { m.Incoming = append(m.Incoming, r) })
		case 2:
			return readMessage(typ, b, func(r *SwapRequest) { m.Outgoing = append(m.Outgoing, r) })
		}
		return 0
	})
}
