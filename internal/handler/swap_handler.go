package handler

import (
	"context"

	"slot-swapper-api/internal/pb"
)

func (h *Handler) CreateSwapRequest(ctx context.Context, req *pb.CreateSwapRequestRequest) (*pb.CreateSwapRequestResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	sr, err := h.swaps.CreateSwapRequest(ctx, userID, req.MySlotId, req.TheirSlotId)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.CreateSwapRequestResponse{Request: toSwapRequest(sr)}, nil
}

func (h *Handler) GetSwapRequest(ctx context.Context, req *pb.GetSwapRequestRequest) (*pb.GetSwapRequestResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	sr, err := h.swaps.GetSwapRequest(ctx, userID, req.Id)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.GetSwapRequestResponse{Request: toSwapRequest(sr)}, nil
}

func (h *Handler) RespondToSwapRequest(ctx context.Context, req *pb.RespondToSwapRequestRequest) (*pb.RespondToSwapRequestResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	st, err := h.swaps.RespondToSwapRequest(ctx, userID, req.RequestId, req.Accept)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.RespondToSwapRequestResponse{Status: string(st)}, nil
}

func (h *Handler) ListSwapRequests(ctx context.Context, _ *pb.ListSwapRequestsRequest) (*pb.ListSwapRequestsResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	reqs, err := h.swaps.ListSwapRequests(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.ListSwapRequestsResponse{
		Incoming: toSwapViews(reqs.Incoming),
		Outgoing: toSwapViews(reqs.Outgoing),
	}, nil
}
