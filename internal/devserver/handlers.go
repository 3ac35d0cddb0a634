package devserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"greenpath/internal/db"
	"greenpath/internal/model"
)

const (
	codeBadRequest = "bad_request"
	codeNotFound   = "not_found"
	codeConflict   = "conflict"
	codeInternal   = "internal_error"
)

// fail writes the error body the client reads its message from.
func fail(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.GetString(requestIDKey),
		"code":       code,
		"message":    msg,
	})
}

func (s *Server) internal(c *gin.Context, err error) {
	_ = c.Error(err)
	loggerFrom(c).Error().Err(err).Msg("handler failed")
	fail(c, http.StatusInternalServerError, codeInternal, "internal server error")
}

func filterFrom(c *gin.Context) (db.Filter, bool) {
	var f db.Filter
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			fail(c, http.StatusBadRequest, codeBadRequest, "userId must be a positive integer")
			return f, false
		}
		f.UserID = id
	}
	f.Status = c.Query("status")
	return f, true
}

// bindJSON decodes the body into dst and checks the record's owner.
func bindJSON[T any](c *gin.Context, dst *T, userID func(T) int64) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, codeBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	if userID(*dst) <= 0 {
		fail(c, http.StatusBadRequest, codeBadRequest, "userId is required")
		return false
	}
	return true
}

func required(c *gin.Context, field, value string) bool {
	if strings.TrimSpace(value) == "" {
		fail(c, http.StatusBadRequest, codeBadRequest, field+" is required")
		return false
	}
	return true
}

func (s *Server) award(c *gin.Context, userID int64, points int, activity string) {
	if err := db.AwardPoints(s.db, userID, points); err != nil {
		// The record is already stored; a missed award is logged, not returned.
		loggerFrom(c).Warn().Err(err).Int64("user_id", userID).Msg("failed to award points")
		return
	}
	s.metrics.points.WithLabelValues(activity).Add(float64(points))
}

func (s *Server) health(c *gin.Context) {
	if err := s.db.PingContext(c.Request.Context()); err != nil {
		fail(c, http.StatusServiceUnavailable, codeInternal, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listWasteReports(c *gin.Context) {
	f, ok := filterFrom(c)
	if !ok {
		return
	}
	out, err := db.ListWasteReports(s.db, f)
	if err != nil {
		s.internal(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createWasteReport(c *gin.Context) {
	var in model.NewWasteReport
	if !bindJSON(c, &in, func(r model.NewWasteReport) int64 { return r.UserID }) ||
		!required(c, "title", in.Title) || !required(c, "scheduledDate", in.ScheduledDate) {
		return
	}
	if in.Status != "" {
		if err := in.Status.Validate(); err != nil {
			fail(c, http.StatusBadRequest, codeBadRequest, err.Error())
			return
		}
	}
	out, err := db.InsertWasteReport(s.db, in)
	if err != nil {
		s.internal(c, err)
		return
	}
	s.award(c, in.UserID, db.PointsPickup, "pickup")
	c.JSON(http.StatusCreated, out)
}

func (s *Server) listDonations(c *gin.Context) {
	f, ok := filterFrom(c)
	if !ok {
		return
	}
	out, err := db.ListDonations(s.db, f)
	if err != nil {
		s.internal(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createDonation(c *gin.Context) {
	var in model.NewDonation
	if !bindJSON(c, &in, func(d model.NewDonation) int64 { return d.UserID }) ||
		!required(c, "itemName", in.ItemName) {
		return
	}
	if in.Status != "" {
		if err := in.Status.Validate(); err != nil {
			fail(c, http.StatusBadRequest, codeBadRequest, err.Error())
			return
		}
	}
	out, err := db.InsertDonation(s.db, in)
	if err != nil {
		s.internal(c, err)
		return
	}
	s.award(c, in.UserID, db.PointsDonation, "donation")
	c.JSON(http.StatusCreated, out)
}

func (s *Server) listEvents(c *gin.Context) {
	f, ok := filterFrom(c)
	if !ok {
		return
	}
	f.UserID = 0
	out, err := db.ListEvents(s.db, f)
	if err != nil {
		s.internal(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) joinEvent(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || eventID <= 0 {
		fail(c, http.StatusBadRequest, codeBadRequest, "invalid event id")
		return
	}
	var in model.JoinEvent
	if !bindJSON(c, &in, func(j model.JoinEvent) int64 { return j.UserID }) {
		return
	}
	if in.EventID != 0 && in.EventID != eventID {
		fail(c, http.StatusBadRequest, codeBadRequest, "eventId does not match the URL")
		return
	}

	p, err := db.JoinEvent(s.db, eventID, in.UserID)
	switch {
	case errors.Is(err, db.ErrNotFound):
		fail(c, http.StatusNotFound, codeNotFound, "event not found")
		return
	case errors.Is(err, db.ErrAlreadyJoined):
		fail(c, http.StatusConflict, codeConflict, "You have already joined this event")
		return
	case errors.Is(err, db.ErrEventFull):
		fail(c, http.StatusConflict, codeConflict, "This event is full")
		return
	case errors.Is(err, db.ErrEventClosed):
		fail(c, http.StatusConflict, codeConflict, "This event is no longer accepting participants")
		return
	case err != nil:
		s.internal(c, err)
		return
	}
	s.award(c, in.UserID, db.PointsEvent, "event")
	c.JSON(http.StatusCreated, p)
}

func (s *Server) listIssues(c *gin.Context) {
	f, ok := filterFrom(c)
	if !ok {
		return
	}
	out, err := db.ListIssues(s.db, f)
	if err != nil {
		s.internal(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createIssue(c *gin.Context) {
	var in model.NewIssue
	if !bindJSON(c, &in, func(i model.NewIssue) int64 { return i.UserID }) ||
		!required(c, "title", in.Title) {
		return
	}
	out, err := db.InsertIssue(s.db, in)
	if err != nil {
		s.internal(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (s *Server) listHelpRequests(c *gin.Context) {
	f, ok := filterFrom(c)
	if !ok {
		return
	}
	out, err := db.ListHelpRequests(s.db, f)
	if err != nil {
		s.internal(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createHelpRequest(c *gin.Context) {
	var in model.NewHelpRequest
	if !bindJSON(c, &in, func(h model.NewHelpRequest) int64 { return h.UserID }) ||
		!required(c, "title", in.Title) {
		return
	}
	out, err := db.InsertHelpRequest(s.db, in)
	if err != nil {
		s.internal(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (s *Server) leaderboard(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fail(c, http.StatusBadRequest, codeBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	out, err := db.Leaderboard(s.db, limit)
	if err != nil {
		s.internal(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createFeedback(c *gin.Context) {
	var in model.NewFeedback
	if !bindJSON(c, &in, func(f model.NewFeedback) int64 { return f.UserID }) {
		return
	}
	if in.Rating < 1 || in.Rating > 5 {
		fail(c, http.StatusBadRequest, codeBadRequest, "rating must be between 1 and 5")
		return
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}
	out, err := db.InsertFeedback(s.db, in)
	if err != nil {
		s.internal(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}
