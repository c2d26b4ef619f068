package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonwraymond/docsearch/logging"
	"github.com/jonwraymond/docsearch/search"
)

// Error codes carried in error bodies.
const (
	CodeBadRequest        = "bad_request"
	CodeSearchUnavailable = "search_unavailable"
	CodeInternalError     = "internal_error"
)

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Hits []search.Hit `json:"hits"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleSearch serves GET /search?q=<input>[&version=<v>].
//
// The version filter applies to the hits the searcher returns, which are
// already capped at its maxHits. A capped page whose hits all belong to
// other versions therefore yields an empty list even when later matches
// carry the requested version.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if !params.Has("q") {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "query parameter q is required")
		return
	}

	hits, err := s.searcher.Search(r.Context(), params.Get("q"))
	if err != nil {
		s.handleSearchError(w, r, err)
		return
	}

	filtered := search.Hits(hits).FilterByVersion(params.Get("version"))
	if filtered == nil {
		filtered = search.Hits{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Hits: filtered})
}

func (s *Server) handleSearchError(w http.ResponseWriter, r *http.Request, err error) {
	log := logging.FromContext(r.Context())
	if errors.Is(err, search.ErrIndexUnavailable) {
		log.Warn("search unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, CodeSearchUnavailable, "search index unavailable")
		return
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	body := map[string]string{"status": "ok"}
	if s.fingerprint != "" {
		body["fingerprint"] = s.fingerprint
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
