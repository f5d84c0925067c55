package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// MockHearingHandler answers every route with its own name.
type MockHearingHandler struct{}

func reply(body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}
}

func (h *MockHearingHandler) Ping(w http.ResponseWriter, r *http.Request) {
	reply("ping")(w, r)
}
func (h *MockHearingHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	reply("today")(w, r)
}
func (h *MockHearingHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	reply("calendar")(w, r)
}
func (h *MockHearingHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	reply("upcoming")(w, r)
}
func (h *MockHearingHandler) GetCompleted(w http.ResponseWriter, r *http.Request) {
	reply("completed")(w, r)
}
func (h *MockHearingHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	reply("stats")(w, r)
}
func (h *MockHearingHandler) GetCalendarICS(w http.ResponseWriter, r *http.Request) {
	reply("ics")(w, r)
}
func (h *MockHearingHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	reply("chart")(w, r)
}
func (h *MockHearingHandler) GetCases(w http.ResponseWriter, r *http.Request) {
	reply("cases")(w, r)
}
func (h *MockHearingHandler) GetCase(w http.ResponseWriter, r *http.Request) {
	reply("case " + mux.Vars(r)["id"])(w, r)
}
func (h *MockHearingHandler) GetQuarantine(w http.ResponseWriter, r *http.Request) {
	reply("quarantine")(w, r)
}

func TestRouter_RegisterRoutes(t *testing.T) {
	router := mux.NewRouter()
	appRouter := NewRouter(&MockHearingHandler{}, router, zap.NewNop())
	appRouter.RegisterRoutes()

	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{"Ping Route", "GET", "/ping", http.StatusOK, "ping"},
		{"Today", "GET", "/v1/hearings/today", http.StatusOK, "today"},
		{"Calendar", "GET", "/v1/hearings/calendar?month=2024-06", http.StatusOK, "calendar"},
		{"Calendar ICS", "GET", "/v1/hearings/calendar.ics", http.StatusOK, "ics"},
		{"Chart", "GET", "/v1/hearings/chart", http.StatusOK, "chart"},
		{"Stats", "GET", "/v1/hearings/stats", http.StatusOK, "stats"},
		{"Upcoming", "GET", "/v1/hearings/upcoming", http.StatusOK, "upcoming"},
		{"Completed", "GET", "/v1/hearings/completed", http.StatusOK, "completed"},
		{"Cases", "GET", "/v1/cases", http.StatusOK, "cases"},
		{"Case By Id", "GET", "/v1/cases/abc-1", http.StatusOK, "case abc-1"},
		{"Quarantine", "GET", "/v1/ingestion/quarantine", http.StatusOK, "quarantine"},
		{"Wrong Method", "POST", "/v1/cases", http.StatusMethodNotAllowed, ""},
		{"Invalid Route", "GET", "/invalid", http.StatusNotFound, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, test.statusCode, rr.Code)
			if test.response != "" {
				assert.Equal(t, test.response, rr.Body.String())
			}
		})
	}
}
