package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/pilotfinder/internal/research"
)

// WebSearchResponse represents the response for GET /api/websearch
type WebSearchResponse struct {
	Query        string                  `json:"query"`
	Results      []research.SearchResult `json:"results"`
	TotalResults int                     `json:"totalResults"`
}

// handleWebSearch is a thin passthrough to the web-search provider, used by
// the chat UI. Provider errors degrade to an empty result set rather than
// failing the request.
func (s *Server) handleWebSearch(w http.ResponseWriter, r *http.Request) {
	if s.searcher == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Web search is not configured")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		s.errorResponse(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	limit := research.DefaultSearchLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 10 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be an integer between 1 and 10")
			return
		}
		limit = n
	}

	results, err := s.searcher.Search(r.Context(), query, limit)
	if err != nil {
		log.Printf("[SERVER] Web search failed for %q: %v", query, err)
		results = []research.SearchResult{}
	}

	s.jsonResponse(w, http.StatusOK, WebSearchResponse{
		Query:        query,
		Results:      results,
		TotalResults: len(results),
	})
}
