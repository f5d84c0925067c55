package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HearingRoutes is the set of endpoints the router exposes.
type HearingRoutes interface {
	Ping(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetCalendar(w http.ResponseWriter, r *http.Request)
	GetUpcoming(w http.ResponseWriter, r *http.Request)
	GetCompleted(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
	GetCalendarICS(w http.ResponseWriter, r *http.Request)
	GetChart(w http.ResponseWriter, r *http.Request)
	GetCases(w http.ResponseWriter, r *http.Request)
	GetCase(w http.ResponseWriter, r *http.Request)
	GetQuarantine(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	hearingHandler HearingRoutes
	router         *mux.Router
	logger         *zap.Logger
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	hearingHandler HearingRoutes,
	router *mux.Router,
	logger *zap.Logger) *Router {
	return &Router{
		hearingHandler: hearingHandler,
		router:         router,
		logger:         logger,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(r.logRequests)

	r.router.HandleFunc("/ping", r.hearingHandler.Ping).Methods("GET")

	// expects ?month=YYYY-MM&week_start={weekday}, both optional
	r.router.HandleFunc("/v1/hearings/calendar", r.hearingHandler.GetCalendar).Methods("GET")
	r.router.HandleFunc("/v1/hearings/calendar.ics", r.hearingHandler.GetCalendarICS).Methods("GET")
	r.router.HandleFunc("/v1/hearings/chart", r.hearingHandler.GetChart).Methods("GET")
	r.router.HandleFunc("/v1/hearings/stats", r.hearingHandler.GetStats).Methods("GET")

	r.router.HandleFunc("/v1/hearings/today", r.hearingHandler.GetToday).Methods("GET")
	r.router.HandleFunc("/v1/hearings/upcoming", r.hearingHandler.GetUpcoming).Methods("GET")
	r.router.HandleFunc("/v1/hearings/completed", r.hearingHandler.GetCompleted).Methods("GET")

	r.router.HandleFunc("/v1/cases", r.hearingHandler.GetCases).Methods("GET")
	r.router.HandleFunc("/v1/cases/{id}", r.hearingHandler.GetCase).Methods("GET")
	r.router.HandleFunc("/v1/ingestion/quarantine", r.hearingHandler.GetQuarantine).Methods("GET")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		r.logger.Debug("Handled request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
