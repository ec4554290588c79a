package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/yogeshramchandani7/cr360-backend/internal/pipeline"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type           string            `json:"type"` // "query"
	SessionID      string            `json:"session_id"`
	Query          string            `json:"query"`
	Clarifications map[string]string `json:"clarifications,omitempty"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type   string                `json:"type"` // "result" or "error"
	Error  string                `json:"error,omitempty"`
	Result *pipeline.QueryResult `json:"result,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWSError(conn, "invalid message format")
			continue
		}
		if req.Query == "" {
			s.sendWSError(conn, "query is required")
			continue
		}
		if req.Type != "query" {
			s.sendWSError(conn, "unknown message type: "+req.Type)
			continue
		}

		question := req.Query
		skipClarification := false
		if len(req.Clarifications) > 0 {
			question = pipeline.AugmentWithClarifications(question, req.Clarifications)
			skipClarification = true
		}

		res, err := s.engine.Process(r.Context(), question, req.SessionID, skipClarification)
		if err != nil {
			s.sendWSError(conn, "processing failed: "+err.Error())
			continue
		}
		s.sendWS(conn, wsResponse{Type: "result", Result: res})
	}
}

func (s *Server) sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		s.log.Warn("websocket write failed", zap.Error(err))
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, msg string) {
	s.sendWS(conn, wsResponse{Type: "error", Error: msg})
}
