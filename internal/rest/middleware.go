package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"slot-swapper-api/internal/apperr"
	"slot-swapper-api/internal/auth"
	"slot-swapper-api/internal/middleware"
)

const userIDKey = "uid"

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Max-Age", "86400")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		attrs := []any{"method", c.Request.Method, "path", c.FullPath(), "status", status, "took", time.Since(start)}
		if status >= http.StatusInternalServerError {
			log.Error("http", attrs...)
			return
		}
		log.Info("http", attrs...)
	}
}

// requireAuth accepts "Authorization: Bearer <jwt>" and stores the caller.
func requireAuth(signer *auth.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			fail(c, apperr.New(apperr.Unauthenticated, "no token"))
			return
		}
		claims, err := signer.Parse(raw)
		if err != nil {
			fail(c, apperr.New(apperr.Unauthenticated, "bad token"))
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Request = c.Request.WithContext(middleware.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

func rateLimit(rl *middleware.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody{Error: "too many requests", Code: "RATE_LIMITED"})
			return
		}
		c.Next()
	}
}

func callerID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
