package api

import (
	"encoding/json"
	"net/http"

	"github.com/apiconf/ndu/internal/log"
)

// Envelope is the uniform response shape of every JSON endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// writeJSON writes a JSON body with the given status code. Encoding failures
// after WriteHeader can only be logged.
func writeJSON(w http.ResponseWriter, status int, body any, logger log.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// writeSuccess writes a success envelope.
func writeSuccess(w http.ResponseWriter, status int, message string, data any, logger log.Logger) {
	writeJSON(w, status, Envelope{Success: true, Message: message, Data: data}, logger)
}

// writeError writes a failure envelope.
func writeError(w http.ResponseWriter, status int, message string, logger log.Logger) {
	writeJSON(w, status, Envelope{Success: false, Message: message}, logger)
}
