package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"slot-swapper-api/internal/account"
	"slot-swapper-api/internal/model"
	"slot-swapper-api/internal/slot"
)

const refreshCookie = "refresh_token"

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type createEventRequest struct {
	Title     string    `json:"title" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
	Status    string    `json:"status"`
}

// updateEventRequest is a partial update; absent fields are left alone.
type updateEventRequest struct {
	Title     *string    `json:"title"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Status    *string    `json:"status"`
}

type swapRequestBody struct {
	MySlotID    string `json:"mySlotId" binding:"required"`
	TheirSlotID string `json:"theirSlotId" binding:"required"`
}

type swapResponseBody struct {
	Accept *bool `json:"accept" binding:"required"`
}

func (s *Server) writeSession(c *gin.Context, status int, sess *account.Session) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     refreshCookie,
		Value:    sess.RefreshToken,
		Path:     "/api/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.JSON(status, sessionJSON{Token: sess.AccessToken, RefreshToken: sess.RefreshToken, User: toUser(sess.User)})
}

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := s.accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	s.writeSession(c, http.StatusCreated, sess)
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := s.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	s.writeSession(c, http.StatusOK, sess)
}

// refresh takes the token from the JSON body or, failing that, the cookie.
func (s *Server) refresh(c *gin.Context) {
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)
	raw := req.RefreshToken
	if raw == "" {
		raw, _ = c.Cookie(refreshCookie)
	}
	sess, err := s.accounts.Refresh(c.Request.Context(), raw)
	if err != nil {
		fail(c, err)
		return
	}
	s.writeSession(c, http.StatusOK, sess)
}

func (s *Server) logout(c *gin.Context) {
	if err := s.accounts.Logout(c.Request.Context(), callerID(c)); err != nil {
		fail(c, err)
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{Name: refreshCookie, Path: "/api/", MaxAge: -1, HttpOnly: true})
	c.Status(http.StatusNoContent)
}

func (s *Server) me(c *gin.Context) {
	u, err := s.accounts.Me(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toUser(u))
}

func (s *Server) listEvents(c *gin.Context) {
	evs, err := s.slots.ListMine(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEvents(evs))
}

func (s *Server) createEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ev, err := s.slots.Create(c.Request.Context(), callerID(c), slot.NewEvent{
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    model.EventStatus(req.Status),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEvent(ev))
}

func (s *Server) updateEvent(c *gin.Context) {
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p := slot.Patch{Title: req.Title, StartTime: req.StartTime, EndTime: req.EndTime}
	if req.Status != nil {
		st := model.EventStatus(*req.Status)
		p.Status = &st
	}
	ev, err := s.slots.Update(c.Request.Context(), callerID(c), c.Param("id"), p)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEvent(ev))
}

func (s *Server) getEvent(c *gin.Context) {
	ev, err := s.slots.Get(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEvent(ev))
}

func (s *Server) deleteEvent(c *gin.Context) {
	if err := s.slots.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) swappableSlots(c *gin.Context) {
	evs, err := s.slots.ListSwappable(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEvents(evs))
}

func (s *Server) createSwapRequest(c *gin.Context) {
	var req swapRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sr, err := s.swaps.CreateSwapRequest(c.Request.Context(), callerID(c), req.MySlotID, req.TheirSlotID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSwapRequest(sr))
}

func (s *Server) respondToSwapRequest(c *gin.Context) {
	var req swapResponseBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st, err := s.swaps.RespondToSwapRequest(c.Request.Context(), callerID(c), c.Param("requestId"), *req.Accept)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("requestId"), "status": st})
}

func (s *Server) listSwapRequests(c *gin.Context) {
	reqs, err := s.swaps.ListSwapRequests(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"incoming": toSwapViews(reqs.Incoming),
		"outgoing": toSwapViews(reqs.Outgoing),
	})
}

func (s *Server) getSwapRequest(c *gin.Context) {
	sr, err := s.swaps.GetSwapRequest(c.Request.Context(), callerID(c), c.Param("requestId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toSwapRequest(sr))
}
