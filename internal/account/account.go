// Package account handles sign-up, login and session tokens.
package account

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"slot-swapper-api/internal/apperr"
	"slot-swapper-api/internal/auth"
	"slot-swapper-api/internal/model"
	"slot-swapper-api/internal/store"
)

const minPasswordLen = 8

// Session is what a successful sign-up, login or refresh hands back.
type Session struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

type Service struct {
	store  store.Store
	signer *auth.Signer
	log    *slog.Logger
	now    func() time.Time
}

func NewService(st store.Store, signer *auth.Signer, log *slog.Logger) *Service {
	return &Service{store: st, signer: signer, log: log, now: time.Now}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, apperr.New(apperr.InvalidArgument, "name, email and password required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.New(apperr.InvalidArgument, "invalid email")
	}
	if len(password) < minPasswordLen {
		return nil, apperr.New(apperr.InvalidArgument, "password too short")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.log.Error("hash password", "error", err)
		return nil, apperr.New(apperr.Transient, "internal error")
	}

	now := s.now().UTC()
	u := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "email already registered")
		}
		s.log.Error("create user", "error", err)
		return nil, apperr.FromStore(err, "")
	}
	s.log.Info("user registered", "user", u.ID)
	return s.issue(ctx, u)
}

// Login never says which of email or password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.New(apperr.InvalidArgument, "email and password required")
	}
	u, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.Unauthenticated, "invalid credentials")
		}
		s.log.Error("lookup user", "error", err)
		return nil, apperr.FromStore(err, "")
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, apperr.New(apperr.Unauthenticated, "invalid credentials")
	}
	return s.issue(ctx, u)
}

// Refresh trades a live refresh token for a new session. Presenting a token
// that was already rotated or revoked is treated as theft and revokes every
// token the user holds.
func (s *Service) Refresh(ctx context.Context, raw string) (*Session, error) {
	if raw == "" {
		return nil, apperr.New(apperr.Unauthenticated, "missing refresh token")
	}
	rt, err := s.store.GetRefreshTokenByHash(ctx, auth.HashRefreshToken(raw))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.Unauthenticated, "invalid refresh token")
		}
		return nil, apperr.FromStore(err, "")
	}
	if rt.Revoked {
		s.log.Warn("refresh token reuse, revoking all sessions", "user", rt.UserID)
		if err := s.store.RevokeAllRefreshTokens(ctx, rt.UserID); err != nil {
			s.log.Error("revoke tokens", "user", rt.UserID, "error", err)
		}
		return nil, apperr.New(apperr.Unauthenticated, "invalid refresh token")
	}
	if s.now().After(rt.ExpiresAt) {
		return nil, apperr.New(apperr.Unauthenticated, "refresh token expired")
	}

	u, err := s.store.UserByID(ctx, rt.UserID)
	if err != nil {
		return nil, apperr.FromStore(err, "user not found")
	}

	newRaw, newHash, err := auth.NewRefreshToken()
	if err != nil {
		return nil, apperr.New(apperr.Transient, "internal error")
	}
	expiry := s.now().Add(auth.RefreshTTL).UTC()
	if err := s.store.RotateRefreshToken(ctx, rt.ID, uuid.New().String(), u.ID, newHash, expiry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// lost a race with another refresh of the same token
			return nil, apperr.New(apperr.Unauthenticated, "invalid refresh token")
		}
		s.log.Error("rotate refresh token", "user", u.ID, "error", err)
		return nil, apperr.FromStore(err, "")
	}

	access, err := s.signer.Issue(u.ID, u.Name)
	if err != nil {
		return nil, apperr.New(apperr.Transient, "internal error")
	}
	return &Session{User: u, AccessToken: access, RefreshToken: newRaw, ExpiresAt: expiry}, nil
}

func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.store.RevokeAllRefreshTokens(ctx, userID); err != nil {
		s.log.Error("logout", "user", userID, "error", err)
		return apperr.FromStore(err, "")
	}
	return nil
}

func (s *Service) Me(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, apperr.FromStore(err, "user not found")
	}
	return u, nil
}

func (s *Service) issue(ctx context.Context, u *model.User) (*Session, error) {
	access, err := s.signer.Issue(u.ID, u.Name)
	if err != nil {
		s.log.Error("sign token", "error", err)
		return nil, apperr.New(apperr.Transient, "internal error")
	}
	raw, hash, err := auth.NewRefreshToken()
	if err != nil {
		return nil, apperr.New(apperr.Transient, "internal error")
	}
	expiry := s.now().Add(auth.RefreshTTL).UTC()
	if _, err := s.store.CreateRefreshToken(ctx, u.ID, hash, expiry); err != nil {
		s.log.Error("store refresh token", "user", u.ID, "error", err)
		return nil, apperr.FromStore(err, "")
	}
	return &Session{User: u, AccessToken: access, RefreshToken: raw, ExpiresAt: expiry}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
