package handler

import (
	"context"

	"slot-swapper-api/internal/pb"
)

func (h *Handler) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {
	sess, err := h.accounts.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.RegisterResponse{UserId: sess.User.ID, Token: sess.AccessToken, Name: sess.User.Name}, nil
}

func (h *Handler) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	sess, err := h.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.LoginResponse{Token: sess.AccessToken, UserId: sess.User.ID, Name: sess.User.Name}, nil
}

func (h *Handler) Me(ctx context.Context, _ *pb.MeRequest) (*pb.MeResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	u, err := h.accounts.Me(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.MeResponse{UserId: u.ID, Email: u.Email, Name: u.Name}, nil
}
