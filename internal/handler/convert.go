package handler

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"slot-swapper-api/internal/model"
	"slot-swapper-api/internal/pb"
)

func ts(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

func fromTS(p *timestamppb.Timestamp) time.Time {
	if p == nil {
		return time.Time{}
	}
	return p.AsTime()
}

func toEvent(e *model.Event) *pb.Event {
	return &pb.Event{
		Id:        e.ID,
		OwnerId:   e.OwnerID,
		Title:     e.Title,
		StartTime: ts(e.StartTime),
		EndTime:   ts(e.EndTime),
		Status:    string(e.Status),
		OwnerName: e.OwnerName,
		CreatedAt: ts(e.CreatedAt),
		UpdatedAt: ts(e.UpdatedAt),
	}
}

func toEvents(evs []model.Event) []*pb.Event {
	out := make([]*pb.Event, len(evs))
	for i := range evs {
		out[i] = toEvent(&evs[i])
	}
	return out
}

func toSwapRequest(r *model.SwapRequest) *pb.SwapRequest {
	return &pb.SwapRequest{
		Id:          r.ID,
		RequesterId: r.RequesterID,
		RequesteeId: r.RequesteeID,
		MySlotId:    r.MySlotID,
		TheirSlotId: r.TheirSlotID,
		Status:      string(r.Status),
		CreatedAt:   ts(r.CreatedAt),
		UpdatedAt:   ts(r.UpdatedAt),
	}
}

func toSwapViews(vs []model.SwapRequestView) []*pb.SwapRequest {
	out := make([]*pb.SwapRequest, len(vs))
	for i := range vs {
		v := &vs[i]
		p := toSwapRequest(&v.SwapRequest)
		p.RequesterName = v.RequesterName
		p.RequesteeName = v.RequesteeName
		p.MySlotTitle = v.MySlotTitle
		p.MySlotStart = ts(v.MySlotStart)
		p.MySlotEnd = ts(v.MySlotEnd)
		p.TheirSlotTitle = v.TheirSlotTitle
		p.TheirSlotStart = ts(v.TheirSlotStart)
		p.TheirSlotEnd = ts(v.TheirSlotEnd)
		out[i] = p
	}
	return out
}
