package handler

import (
	"context"

	"slot-swapper-api/internal/model"
	"slot-swapper-api/internal/pb"
	"slot-swapper-api/internal/slot"
)

func (h *Handler) ListEvents(ctx context.Context, _ *pb.ListEventsRequest) (*pb.ListEventsResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	evs, err := h.slots.ListMine(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.ListEventsResponse{Events: toEvents(evs)}, nil
}

func (h *Handler) CreateEvent(ctx context.Context, req *pb.CreateEventRequest) (*pb.CreateEventResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	ev, err := h.slots.Create(ctx, userID, slot.NewEvent{
		Title:     req.Title,
		StartTime: fromTS(req.StartTime),
		EndTime:   fromTS(req.EndTime),
		Status:    model.EventStatus(req.Status),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.CreateEventResponse{Event: toEvent(ev)}, nil
}

func (h *Handler) UpdateEvent(ctx context.Context, req *pb.UpdateEventRequest) (*pb.UpdateEventResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	var p slot.Patch
	p.Title = req.Title
	if req.StartTime != nil {
		t := req.StartTime.AsTime()
		p.StartTime = &t
	}
	if req.EndTime != nil {
		t := req.EndTime.AsTime()
		p.EndTime = &t
	}
	if req.Status != nil {
		s := model.EventStatus(*req.Status)
		p.Status = &s
	}
	ev, err := h.slots.Update(ctx, userID, req.Id, p)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.UpdateEventResponse{Event: toEvent(ev)}, nil
}

func (h *Handler) DeleteEvent(ctx context.Context, req *pb.DeleteEventRequest) (*pb.DeleteEventResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.slots.Delete(ctx, userID, req.Id); err != nil {
		return nil, toStatus(err)
	}
	return &pb.DeleteEventResponse{}, nil
}

func (h *Handler) GetEvent(ctx context.Context, req *pb.GetEventRequest) (*pb.GetEventResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	ev, err := h.slots.Get(ctx, userID, req.Id)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.GetEventResponse{Event: toEvent(ev)}, nil
}

func (h *Handler) ListSwappableSlots(ctx context.Context, _ *pb.ListSwappableSlotsRequest) (*pb.ListSwappableSlotsResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	evs, err := h.slots.ListSwappable(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.ListSwappableSlotsResponse{Slots: toEvents(evs)}, nil
}
