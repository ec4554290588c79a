package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yogeshramchandani7/cr360-backend/internal/pipeline"
)

// chatRequest is the JSON body of POST /api/v1/chat. Clarifications map
// an ambiguous term to the option the user picked; when present, the
// question is augmented and ambiguity detection is skipped.
type chatRequest struct {
	Query          string            `json:"query"`
	SessionID      string            `json:"session_id"`
	Clarifications map[string]string `json:"clarifications,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		s.writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	question := req.Query
	skipClarification := false
	if len(req.Clarifications) > 0 {
		question = pipeline.AugmentWithClarifications(question, req.Clarifications)
		skipClarification = true
	}

	res, err := s.engine.Process(r.Context(), question, req.SessionID, skipClarification)
	if err != nil {
		s.log.Error("chat processing failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "processing failed")
		return
	}

	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.engine.CreateSession()
	if err != nil {
		s.log.Error("session creation failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "session creation failed")
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.engine.RemoveSession(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	s.engine.ResetSession(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	cat := s.engine.Catalog()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"tables":            cat.Tables(),
		"business_rules":    cat.BusinessRules(),
		"example_questions": cat.ExampleQuestions(),
	})
}

func (s *Server) handleMetricCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.engine.Catalog()
	if q := r.URL.Query().Get("q"); q != "" {
		s.writeJSON(w, http.StatusOK, map[string]any{"metrics": cat.SearchMetrics(q)})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"metrics": cat.Metrics()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
