package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"slot-swapper-api/internal/account"
	"slot-swapper-api/internal/middleware"
	"slot-swapper-api/internal/pb"
	"slot-swapper-api/internal/slot"
	"slot-swapper-api/internal/swap"
)

// Handler implements pb.SlotSwapServiceServer on top of the services.
type Handler struct {
	pb.UnimplementedSlotSwapServiceServer
	accounts *account.Service
	slots    *slot.Manager
	swaps    *swap.Engine
}

func New(accounts *account.Service, slots *slot.Manager, swaps *swap.Engine) *Handler {
	return &Handler{accounts: accounts, slots: slots, swaps: swaps}
}

// uid returns the caller set by the auth interceptor.
func uid(ctx context.Context) (string, error) {
	id, ok := middleware.UserID(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "not authenticated")
	}
	return id, nil
}
