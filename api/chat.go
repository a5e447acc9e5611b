package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/apiconf/ndu/internal/agent"
	"github.com/apiconf/ndu/internal/log"
)

// ChatHandler handles the chat endpoint.
type ChatHandler struct {
	agent  *agent.Agent
	logger log.Logger
}

// NewChatHandler creates a chat handler.
func NewChatHandler(a *agent.Agent, logger log.Logger) *ChatHandler {
	return &ChatHandler{agent: a, logger: logger}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/agents/chat", h.chat)
}

// chatRequest is the chat request body.
type chatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// chat handles one chat turn. Validation failures are 400; everything the
// gateway absorbs comes back as 200 with a degraded payload.
//
// Chatting never writes to the recents list. The client saves a session
// through POST /api/v1/agents/sessions when the user navigates away from it,
// so an active conversation stays unsaved until then.
func (h *ChatHandler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}

	reply, err := h.agent.Chat(r.Context(), agent.Input{
		Message:   req.Message,
		UserID:    req.UserID,
		SessionID: req.SessionID,
	})
	if err != nil {
		if errors.Is(err, agent.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, "message is required", h.logger)
			return
		}
		h.logger.Error("chat failed", "error", err)
		writeError(w, http.StatusInternalServerError, "chat failed", h.logger)
		return
	}

	msg := "Chat processed successfully"
	if reply.Degraded {
		msg = "Chat degraded, fallback response returned"
	}
	writeJSON(w, http.StatusOK, Envelope{
		Success: reply.Success,
		Message: msg,
		Data:    reply,
	}, h.logger)
}
