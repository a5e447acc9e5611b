package agent

import (
	"context"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/apiconf/ndu/internal/config"
	"github.com/apiconf/ndu/internal/tools"
)

// NewGenerator builds the production Generator: genkit.Generate over the
// configured model with the registered conference tools and the Ndu system
// prompt.
func NewGenerator(g *genkit.Genkit, cfg *config.Config) Generator {
	return func(ctx context.Context, messages []*ai.Message) (*ai.ModelResponse, error) {
		toolRefs := make([]ai.ToolRef, 0, len(tools.ToolNames()))
		for _, name := range tools.ToolNames() {
			if tool := genkit.LookupTool(g, name); tool != nil {
				toolRefs = append(toolRefs, tool)
			}
		}

		return genkit.Generate(ctx, g,
			ai.WithModelName(cfg.FullModelName()),
			ai.WithSystem(systemPrompt(cfg.Conference)),
			ai.WithMessages(messages...),
			ai.WithTools(toolRefs...),
			ai.WithMaxTurns(cfg.MaxTurns),
		)
	}
}
