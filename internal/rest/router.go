// Package rest serves the JSON API used by the web client.
package rest

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"slot-swapper-api/internal/account"
	"slot-swapper-api/internal/auth"
	"slot-swapper-api/internal/middleware"
	"slot-swapper-api/internal/slot"
	"slot-swapper-api/internal/swap"
)

type Server struct {
	accounts *account.Service
	slots    *slot.Manager
	swaps    *swap.Engine
	signer   *auth.Signer
	limiter  *middleware.RateLimiter
	log      *slog.Logger
}

func New(accounts *account.Service, slots *slot.Manager, swaps *swap.Engine, signer *auth.Signer, rl *middleware.RateLimiter, log *slog.Logger) *Server {
	return &Server{accounts: accounts, slots: slots, swaps: swaps, signer: signer, limiter: rl, log: log}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	// ClientIP is the socket address; forwarding headers are not trusted
	_ = r.SetTrustedProxies(nil)
	r.Use(gin.Recovery(), requestLog(s.log), cors())

	api := r.Group("/api")
	{
		limited := api.Group("", rateLimit(s.limiter))
		limited.POST("/signup", s.signup)
		limited.POST("/login", s.login)
		api.POST("/refresh", s.refresh)
	}

	authed := api.Group("", requireAuth(s.signer))
	{
		authed.POST("/logout", s.logout)
		authed.GET("/me", s.me)

		authed.GET("/events", s.listEvents)
		authed.POST("/events", s.createEvent)
		authed.GET("/events/:id", s.getEvent)
		authed.PUT("/events/:id", s.updateEvent)
		authed.DELETE("/events/:id", s.deleteEvent)

		authed.GET("/swappable-slots", s.swappableSlots)
		authed.POST("/swap-request", s.createSwapRequest)
		authed.POST("/swap-response/:requestId", s.respondToSwapRequest)
		authed.GET("/swap-requests", s.listSwapRequests)
		authed.GET("/swap-requests/:requestId", s.getSwapRequest)
	}
	return r
}
