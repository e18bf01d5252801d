package model

import "time"

type EventStatus string

const (
	StatusBusy        EventStatus = "BUSY"
	StatusSwappable   EventStatus = "SWAPPABLE"
	StatusSwapPending EventStatus = "SWAP_PENDING"
)

func (s EventStatus) Valid() bool {
	switch s {
	case StatusBusy, StatusSwappable, StatusSwapPending:
		return true
	}
	return false
}

type SwapStatus string

const (
	SwapPending  SwapStatus = "PENDING"
	SwapAccepted SwapStatus = "ACCEPTED"
	SwapRejected SwapStatus = "REJECTED"
)

func (s SwapStatus) Valid() bool {
	switch s {
	case SwapPending, SwapAccepted, SwapRejected:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Event struct {
	ID        string
	OwnerID   string
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    EventStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// only filled by listings that join users
	OwnerName string
}

type SwapRequest struct {
	ID          string
	RequesterID string
	RequesteeID string
	MySlotID    string
	TheirSlotID string
	Status      SwapStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SwapRequestView is a request joined with the display fields of both
// parties and both slots.
type SwapRequestView struct {
	SwapRequest
	RequesterName  string
	RequesteeName  string
	MySlotTitle    string
	MySlotStart    time.Time
	MySlotEnd      time.Time
	TheirSlotTitle string
	TheirSlotStart time.Time
	TheirSlotEnd   time.Time
}
