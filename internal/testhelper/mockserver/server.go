// Package mockserver provides a fake J-Quants API for tests.
// It serves the token refresh and trading calendar endpoints from memory.
package mockserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

// CalendarDay is a record served by the fake trading calendar endpoint.
// HolidayDivision is any so tests can serve strings, numbers or garbage.
type CalendarDay struct {
	Date            string `json:"Date"`
	HolidayDivision any    `json:"HolidayDivision"`
}

// Response overrides a route with a fixed status and body.
type Response struct {
	Status int
	Body   string
}

// MockJQuantsServer mimics the parts of the J-Quants API the fetcher uses.
type MockJQuantsServer struct {
	mu sync.Mutex

	server *httptest.Server

	refreshToken string
	idToken      string
	days         []CalendarDay

	authOverride     *Response
	calendarOverride *Response

	authCalls      int
	calendarCalls  int
	lastCalendarRQ url.Values
	lastAuthHeader string
}

// NewMockJQuantsServer starts a server that accepts refreshToken and issues idToken.
func NewMockJQuantsServer(refreshToken, idToken string) *MockJQuantsServer {
	s := &MockJQuantsServer{
		refreshToken: refreshToken,
		idToken:      idToken,
	}

	router := mux.NewRouter()
	api := router.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/token/auth_refresh", s.handleAuthRefresh).Methods(http.MethodPost)
	api.HandleFunc("/markets/trading_calendar", s.handleTradingCalendar).Methods(http.MethodGet)

	s.server = httptest.NewServer(router)

	return s
}

// URL returns the API root, equivalent to https://api.jquants.com/v1.
func (s *MockJQuantsServer) URL() string {
	return s.server.URL + "/v1"
}

// Close shuts the server down.
func (s *MockJQuantsServer) Close() {
	s.server.Close()
}

// SetDays replaces the calendar served by the fake.
func (s *MockJQuantsServer) SetDays(days []CalendarDay) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.days = days
}

// SetAuthResponse makes the token refresh endpoint return a fixed response.
func (s *MockJQuantsServer) SetAuthResponse(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authOverride = &Response{Status: status, Body: body}
}

// SetCalendarResponse makes the trading calendar endpoint return a fixed response.
func (s *MockJQuantsServer) SetCalendarResponse(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calendarOverride = &Response{Status: status, Body: body}
}

// AuthCalls returns how many token refresh requests were received.
func (s *MockJQuantsServer) AuthCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.authCalls
}

// CalendarCalls returns how many trading calendar requests were received.
func (s *MockJQuantsServer) CalendarCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calendarCalls
}

// LastCalendarQuery returns the query of the most recent trading calendar request.
func (s *MockJQuantsServer) LastCalendarQuery() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastCalendarRQ
}

// LastAuthorization returns the Authorization header of the most recent trading calendar request.
func (s *MockJQuantsServer) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastAuthHeader
}

func (s *MockJQuantsServer) handleAuthRefresh(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authCalls++

	if s.authOverride != nil {
		writeRaw(w, s.authOverride.Status, s.authOverride.Body)

		return
	}

	if r.URL.Query().Get("refreshtoken") != s.refreshToken {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "'refreshtoken' is incorrect."})

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"idToken": s.idToken})
}

func (s *MockJQuantsServer) handleTradingCalendar(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calendarCalls++
	s.lastCalendarRQ = r.URL.Query()
	s.lastAuthHeader = r.Header.Get("Authorization")

	if s.calendarOverride != nil {
		writeRaw(w, s.calendarOverride.Status, s.calendarOverride.Body)

		return
	}

	if s.lastAuthHeader != "Bearer "+s.idToken {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "The incoming token is invalid or expired."})

		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	days := make([]CalendarDay, 0, len(s.days))
	for _, day := range s.days {
		// YYYY-MM-DD strings order the same way as the dates they name.
		if from != "" && strings.Compare(day.Date, from) < 0 {
			continue
		}

		if to != "" && strings.Compare(day.Date, to) > 0 {
			continue
		}

		days = append(days, day)
	}

	writeJSON(w, http.StatusOK, map[string]any{"trading_calendar": days})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
