// Package devserver is a local stand-in for the Green Path REST backend. It
// stores records in SQLite and answers the endpoints the client uses.
package devserver

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server wires the router to a database.
type Server struct {
	db       *sql.DB
	log      zerolog.Logger
	metrics  *metrics
	gatherer prometheus.Gatherer
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the time source used for feedback timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a server. Metrics are registered on reg.
func New(db *sql.DB, log zerolog.Logger, reg *prometheus.Registry, opts ...Option) *Server {
	s := &Server{
		db:       db,
		log:      log.With().Str("component", "devserver").Logger(),
		metrics:  newMetrics(reg),
		gatherer: reg,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin engine with middleware and every route.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(s.log), recovery(s.log), s.metrics.middleware())

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.GET("/waste-reports", s.listWasteReports)
	api.POST("/waste-reports", s.createWasteReport)
	api.GET("/donations", s.listDonations)
	api.POST("/donations", s.createDonation)
	api.GET("/events", s.listEvents)
	api.POST("/events/:id/participants", s.joinEvent)
	api.GET("/issues", s.listIssues)
	api.POST("/issues", s.createIssue)
	api.GET("/help-requests", s.listHelpRequests)
	api.POST("/help-requests", s.createHelpRequest)
	api.GET("/leaderboard", s.leaderboard)
	api.POST("/feedback", s.createFeedback)

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, codeNotFound, "route not found")
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}
