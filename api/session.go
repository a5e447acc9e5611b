package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/apiconf/ndu/internal/history"
	"github.com/apiconf/ndu/internal/log"
)

// previewLen bounds the stored session preview.
const previewLen = 80

// SessionHandler exposes the recent-sessions cache to the chat client.
type SessionHandler struct {
	cache  *history.Cache
	logger log.Logger
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(cache *history.Cache, logger log.Logger) *SessionHandler {
	return &SessionHandler{cache: cache, logger: logger}
}

// RegisterRoutes registers session routes on the given mux.
func (h *SessionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/agents/sessions", h.list)
	mux.HandleFunc("POST /api/v1/agents/sessions", h.upsert)
}

// list returns the recent session records, most recent first, plus the
// current session id.
func (h *SessionHandler) list(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "Recent sessions", map[string]any{
		"current":  h.cache.Current(),
		"sessions": h.cache.Records(),
		"cap":      h.cache.Cap(),
	}, h.logger)
}

// upsertRequest is the session upsert body. The client posts this when the
// user navigates away from a conversation (sidebar open, new chat, restore).
type upsertRequest struct {
	SessionID  string `json:"session_id"`
	Preview    string `json:"preview"`
	SetCurrent bool   `json:"set_current"`
}

// upsert moves a session to the front of the recents list, generating an id
// when the client has none yet.
func (h *SessionHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	if err := h.cache.Touch(req.SessionID, preview(req.Preview)); err != nil {
		h.logger.Error("session upsert failed", "session_id", req.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save session", h.logger)
		return
	}
	if req.SetCurrent {
		if err := h.cache.SetCurrent(req.SessionID); err != nil {
			h.logger.Warn("set current session failed", "session_id", req.SessionID, "error", err)
		}
	}

	writeSuccess(w, http.StatusOK, "Session saved", map[string]any{
		"session_id": req.SessionID,
		"current":    h.cache.Current(),
	}, h.logger)
}

// preview collapses whitespace and bounds the text, cutting at a rune
// boundary so multi-byte characters survive truncation intact.
func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= previewLen {
		return text
	}
	cut := previewLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
