package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"hearing-server/dao/redis"
	"hearing-server/hearingtime"
	"hearing-server/models/hearing"
	services "hearing-server/service"
)

const (
	MONTH_QUERY_ARG      = "month"
	WEEK_START_QUERY_ARG = "week_start"
	CASE_ID_PATH_VAR     = "id"
)

// HearingQueries is the read API the handler serves.
type HearingQueries interface {
	CurrentMonth() services.Month
	Today() (*services.TodayView, error)
	Calendar(m services.Month, weekStart time.Weekday) (*services.CalendarView, error)
	Upcoming() ([]hearing.HearingRecord, error)
	Completed() ([]hearing.HearingRecord, error)
	Stats(m services.Month) (*services.StatsView, error)
	Cases() ([]hearing.HearingRecord, error)
	Case(id string) (*hearing.HearingRecord, error)
	Quarantine() ([]hearing.QuarantinedRow, error)
	WriteICS(w io.Writer, m services.Month) error
	WriteChart(w io.Writer, m services.Month) error
}

type HearingHandler struct {
	queries   HearingQueries
	weekStart time.Weekday
	logger    *zap.Logger
}

func NewHearingHandler(queries HearingQueries, weekStart time.Weekday, logger *zap.Logger) *HearingHandler {
	return &HearingHandler{queries: queries, weekStart: weekStart, logger: logger.Named("HearingHandler")}
}

// Ping handles GET /ping
func (h *HearingHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

// GetToday handles GET /v1/hearings/today
func (h *HearingHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	view, err := h.queries.Today()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

// GetCalendar handles GET /v1/hearings/calendar?month=YYYY-MM&week_start=sunday
func (h *HearingHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	month, err := parseMonthArg(vals, h.queries.CurrentMonth())
	if err != nil {
		h.writeBadRequest(w, err)
		return
	}
	weekStart, err := parseWeekStartArg(vals, h.weekStart)
	if err != nil {
		h.writeBadRequest(w, err)
		return
	}

	view, err := h.queries.Calendar(month, weekStart)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

// GetUpcoming handles GET /v1/hearings/upcoming
func (h *HearingHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	recs, err := h.queries.Upcoming()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, recs)
}

// GetCompleted handles GET /v1/hearings/completed
func (h *HearingHandler) GetCompleted(w http.ResponseWriter, r *http.Request) {
	recs, err := h.queries.Completed()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, recs)
}

// GetStats handles GET /v1/hearings/stats?month=YYYY-MM
func (h *HearingHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthArg(r.URL.Query(), h.queries.CurrentMonth())
	if err != nil {
		h.writeBadRequest(w, err)
		return
	}
	stats, err := h.queries.Stats(month)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// GetCalendarICS handles GET /v1/hearings/calendar.ics?month=YYYY-MM
func (h *HearingHandler) GetCalendarICS(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthArg(r.URL.Query(), h.queries.CurrentMonth())
	if err != nil {
		h.writeBadRequest(w, err)
		return
	}
	var buf bytes.Buffer
	if err := h.queries.WriteICS(&buf, month); err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="hearings-%s.ics"`, month))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GetChart handles GET /v1/hearings/chart?month=YYYY-MM
func (h *HearingHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthArg(r.URL.Query(), h.queries.CurrentMonth())
	if err != nil {
		h.writeBadRequest(w, err)
		return
	}
	var buf bytes.Buffer
	if err := h.queries.WriteChart(&buf, month); err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GetCases handles GET /v1/cases
func (h *HearingHandler) GetCases(w http.ResponseWriter, r *http.Request) {
	recs, err := h.queries.Cases()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, recs)
}

// GetCase handles GET /v1/cases/{id}
func (h *HearingHandler) GetCase(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)[CASE_ID_PATH_VAR]
	rec, err := h.queries.Case(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

// GetQuarantine handles GET /v1/ingestion/quarantine
func (h *HearingHandler) GetQuarantine(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.Quarantine()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rows)
}

func (h *HearingHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Error encoding response", zap.Error(err))
	}
}

func (h *HearingHandler) writeBadRequest(w http.ResponseWriter, err error) {
	h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

// writeError maps service errors to status codes.
func (h *HearingHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, redis.ErrNoSnapshot):
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "hearings not loaded yet"})
	case errors.Is(err, redis.ErrCaseNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "case not found"})
	default:
		h.logger.Error("Error serving request", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func parseMonthArg(vals url.Values, fallback services.Month) (services.Month, error) {
	raw := vals.Get(MONTH_QUERY_ARG)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return services.Month{}, fmt.Errorf("invalid argument %s: want YYYY-MM, got %q", MONTH_QUERY_ARG, raw)
	}
	return services.Month{Year: t.Year(), Month: t.Month()}, nil
}

func parseWeekStartArg(vals url.Values, fallback time.Weekday) (time.Weekday, error) {
	raw := vals.Get(WEEK_START_QUERY_ARG)
	if raw == "" {
		return fallback, nil
	}
	d, err := hearingtime.ParseWeekday(raw)
	if err != nil {
		return fallback, fmt.Errorf("invalid argument %s: %w", WEEK_START_QUERY_ARG, err)
	}
	return d, nil
}
