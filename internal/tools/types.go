package tools

// Status indicates whether a tool call succeeded.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Error codes returned to the model.
const (
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeInvalidArgs = "INVALID_ARGUMENTS"
	ErrCodeUpstream    = "UPSTREAM_FAILURE"
)

// Error is a structured tool failure the model can read and react to.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is the uniform return value of every tool. Failures are carried as
// data rather than Go errors so the model sees them and can adjust; degraded
// results always include the support contact so the assistant can hand the
// attendee to a human.
type Result struct {
	Status  Status         `json:"status"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Error   *Error         `json:"error,omitempty"`
}
