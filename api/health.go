package api

import (
	"net/http"
	"time"

	"github.com/apiconf/ndu/internal/config"
	"github.com/apiconf/ndu/internal/directory"
	"github.com/apiconf/ndu/internal/log"
	"github.com/apiconf/ndu/internal/session"
)

// HealthHandler handles status, health, and info endpoints.
type HealthHandler struct {
	cfg      *config.Config
	contexts *session.Store
	dir      *directory.Store
	logger   log.Logger
	started  time.Time
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(cfg *config.Config, contexts *session.Store, dir *directory.Store, logger log.Logger) *HealthHandler {
	return &HealthHandler{
		cfg:      cfg,
		contexts: contexts,
		dir:      dir,
		logger:   logger,
		started:  time.Now(),
	}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/agents/health", h.health)
	mux.HandleFunc("GET /api/v1/agents/status", h.status)
	mux.HandleFunc("GET /api/v1/agents/info", h.info)
}

// health is a liveness probe.
func (h *HealthHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "healthy", map[string]any{
		"status": "ok",
	}, h.logger)
}

// status reports the agent state and conference stats.
func (h *HealthHandler) status(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "Agent status", map[string]any{
		"status":          "active",
		"model":           h.cfg.FullModelName(),
		"uptime_seconds":  int(time.Since(h.started).Seconds()),
		"active_sessions": h.contexts.Count(),
		"venue":           h.cfg.Conference.VenueName + ", " + h.cfg.Conference.VenueAddress,
		"dates":           h.cfg.Conference.Dates,
		"total_speakers":  len(h.dir.Speakers()),
		"total_sessions":  len(h.dir.Sessions()),
	}, h.logger)
}

// info returns venue, support, and capability details.
func (h *HealthHandler) info(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "Agent info", map[string]any{
		"name":        "Ndu",
		"description": "AI concierge for API Conference Lagos 2025",
		"venue": map[string]any{
			"name":        h.cfg.Conference.VenueName,
			"address":     h.cfg.Conference.VenueAddress,
			"coordinates": h.cfg.Conference.VenueCoordinates,
			"dates":       h.cfg.Conference.Dates,
		},
		"support": map[string]any{
			"phone": h.cfg.Conference.SupportPhone,
			"email": h.cfg.Conference.SupportEmail,
		},
		"capabilities": []string{
			"speaker lookup",
			"session search",
			"schedule by day",
			"keynotes",
			"directions to venue",
			"nearby transport options",
			"venue information",
			"conference website lookup",
		},
	}, h.logger)
}
