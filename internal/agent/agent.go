// Package agent is the gateway between the HTTP surface and the model
// runtime. It validates input, threads conversation history through the
// model, and absorbs runtime failures into a fallback reply so the HTTP
// layer never sees them as errors.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/google/uuid"

	"github.com/apiconf/ndu/internal/config"
	"github.com/apiconf/ndu/internal/log"
	"github.com/apiconf/ndu/internal/session"
)

// ErrEmptyMessage is returned when the chat message is empty or whitespace.
// It is the only error Chat returns; everything downstream degrades instead.
var ErrEmptyMessage = errors.New("agent: message is empty")

// FallbackResponseMessage is used when the model returns no text.
const FallbackResponseMessage = "I apologize, but I couldn't generate a response. Please try again."

// DefaultUserID is assigned when the client sends no user id.
const DefaultUserID = "guest"

// Input is one inbound chat message.
type Input struct {
	Message   string
	UserID    string
	SessionID string
}

// Reply is the gateway's answer. Degraded replies carry Success=false and a
// fallback response; they are still delivered with HTTP 200.
type Reply struct {
	Success   bool           `json:"success"`
	Response  string         `json:"response"`
	UserID    string         `json:"user_id"`
	SessionID string         `json:"session_id"`
	ToolsUsed []string       `json:"tools_used,omitempty"`
	Degraded  bool           `json:"degraded,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Generator produces a model response for a conversation. The production
// implementation wraps genkit.Generate with the registered tools; tests
// inject stubs.
type Generator func(ctx context.Context, messages []*ai.Message) (*ai.ModelResponse, error)

// Agent orchestrates one chat turn.
type Agent struct {
	generate   Generator
	sessions   *session.Store
	conference config.ConferenceConfig
	logger     log.Logger
}

// New creates the chat gateway.
func New(gen Generator, sessions *session.Store, conference config.ConferenceConfig, logger log.Logger) (*Agent, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Agent{
		generate:   gen,
		sessions:   sessions,
		conference: conference,
		logger:     logger,
	}, nil
}

// Chat handles one message. Validation failures return an error before any
// outbound call; runtime and tool failures are absorbed into a degraded
// reply. Successful exchanges are appended to the session context, creating
// it on first use.
func (a *Agent) Chat(ctx context.Context, in Input) (Reply, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}

	userID := in.UserID
	if userID == "" {
		userID = DefaultUserID
	}
	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history := a.sessions.History(sessionID)
	messages := make([]*ai.Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, ai.NewUserMessage(ai.NewTextPart(message)))

	resp, err := a.generate(ctx, messages)
	if err != nil {
		a.logger.Error("chat generation failed",
			"session_id", sessionID,
			"error", err)
		return a.fallbackReply(userID, sessionID, err), nil
	}

	text := resp.Text()
	if text == "" {
		a.logger.Warn("model returned empty response", "session_id", sessionID)
		text = FallbackResponseMessage
	}

	a.sessions.AppendExchange(sessionID, userID, message, text)

	return Reply{
		Success:   true,
		Response:  text,
		UserID:    userID,
		SessionID: sessionID,
		ToolsUsed: toolsUsed(resp),
	}, nil
}

// fallbackReply is the degraded answer for any runtime failure. It always
// names the support phone so the attendee has a human to reach.
func (a *Agent) fallbackReply(userID, sessionID string, cause error) Reply {
	return Reply{
		Success: false,
		Response: fmt.Sprintf(
			"I apologize, but I'm experiencing technical difficulties. "+
				"Please try again or contact the support team at %s for assistance.",
			a.conference.SupportPhone),
		UserID:    userID,
		SessionID: sessionID,
		Degraded:  true,
		Metadata: map[string]any{
			"error":         cause.Error(),
			"support_phone": a.conference.SupportPhone,
		},
	}
}

// toolsUsed collects the tool names the model called during the turn. The
// generate loop records tool requests on the final request's message list.
func toolsUsed(resp *ai.ModelResponse) []string {
	if resp == nil || resp.Request == nil {
		return nil
	}

	var names []string
	seen := make(map[string]bool)
	for _, msg := range resp.Request.Messages {
		for _, part := range msg.Content {
			if part.ToolRequest == nil {
				continue
			}
			if name := part.ToolRequest.Name; name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
