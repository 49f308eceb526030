// Package cityapi is a mock city Data Source and calculator endpoint, serving
// the structured city records over HTTP the way the real backend is expected to.
package cityapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/bastiangx/citycomplete/internal/metrics"
	"github.com/bastiangx/citycomplete/internal/utils"
	"github.com/bastiangx/citycomplete/pkg/calculator"
	"github.com/bastiangx/citycomplete/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// SearchRequest holds the query parameters of GET /api/cities/search.
type SearchRequest struct {
	Query string `schema:"query"`
	Q     string `schema:"q"`
	Limit int    `schema:"limit,default:10"`
}

// Term returns the search text, accepting both query and q.
func (s *SearchRequest) Term() string {
	if s.Query != "" {
		return strings.TrimSpace(s.Query)
	}
	return strings.TrimSpace(s.Q)
}

// SearchResponse is the body of both city endpoints.
type SearchResponse struct {
	Cities []dictionary.Entry `json:"cities"`
}

// Server answers city searches from an in-memory index after an artificial delay.
type Server struct {
	index    *dictionary.Index
	delay    time.Duration
	maxLimit int
}

// New creates a server over entries. A nil entries uses the built-in regional set.
func New(entries []dictionary.Entry, delay time.Duration, maxLimit int) *Server {
	if entries == nil {
		entries = dictionary.RegionalCities
	}
	if maxLimit <= 0 {
		maxLimit = 50
	}
	return &Server{
		index:    dictionary.NewIndex(entries),
		delay:    delay,
		maxLimit: maxLimit,
	}
}

// Handler returns the routes served by the mock. GET /api/cities answers with
// the whole corpus whatever the query, which is what a cached Data Source
// needs; GET /api/cities/search filters by query and limit.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cities", s.handleList)
	mux.HandleFunc("GET /api/cities/search", s.handleSearch)
	mux.HandleFunc("POST /api/calculator/submit", s.handleSubmit)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if !s.wait(r) {
		return
	}
	cities := s.index.Entries()
	metrics.ServedSearches.Inc()
	log.Debugf("Served all %d cities", len(cities))

	writeJSON(w, http.StatusOK, SearchResponse{Cities: cities})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req := SearchRequest{Limit: 10}
	if err := decoder.Decode(&req, r.URL.Query()); err != nil {
		http.Error(w, "invalid query parameters", http.StatusBadRequest)
		return
	}
	if req.Limit <= 0 || req.Limit > s.maxLimit {
		req.Limit = s.maxLimit
	}
	if !s.wait(r) {
		return
	}

	term := req.Term()
	cities := []dictionary.Entry{}
	if term == "" || utils.IsValidInput(term) {
		cities = append(cities, s.index.Search(term, req.Limit)...)
	}
	metrics.ServedSearches.Inc()
	log.Debugf("Served %d cities for %q", len(cities), term)

	writeJSON(w, http.StatusOK, SearchResponse{Cities: cities})
}

// wait applies the artificial delay. It reports false when the client went
// away first.
func (s *Server) wait(r *http.Request) bool {
	if s.delay <= 0 {
		return true
	}
	select {
	case <-time.After(s.delay):
		return true
	case <-r.Context().Done():
		return false
	}
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub calculator.Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, calculator.Result{Message: "invalid JSON body"})
		return
	}
	if err := sub.Validate(); err != nil {
		metrics.Submissions.WithLabelValues("rejected").Inc()
		writeJSON(w, http.StatusUnprocessableEntity, calculator.Result{Message: err.Error()})
		return
	}

	id := uuid.New().String()
	metrics.Submissions.WithLabelValues("accepted").Inc()
	log.Infof("Accepted submission %s: %s -> %s", id, sub.CityFrom, sub.CityTo)
	writeJSON(w, http.StatusOK, calculator.Result{Success: true, ID: id, Message: "submission received"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Could not encode response: %v", err)
	}
}
