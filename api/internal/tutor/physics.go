package tutor

import (
	"context"
	"fmt"
	"strings"

	"tutor-bot/api/internal/constants"
	"tutor-bot/api/internal/logging"
)

// PhysicsHandler answers physics queries, optionally grounding the explanation
// in entries of a constants.Table.
type PhysicsHandler struct {
	llm   Completer
	table *constants.Table
}

// NewPhysicsHandler uses constants.Default when table is nil.
func NewPhysicsHandler(c Completer, table *constants.Table) *PhysicsHandler {
	if table == nil {
		table = constants.Default
	}
	return &PhysicsHandler{llm: c, table: table}
}

func (h *PhysicsHandler) Process(ctx context.Context, query string) (PhysicsAnswer, error) {
	log := logging.FromContext(ctx)

	prompt := fmt.Sprintf(physicsAnalysisPrompt, query, strings.Join(h.table.Names(), ", "))
	raw, err := h.llm.Complete(ctx, prompt)
	if err != nil {
		return PhysicsAnswer{}, err
	}

	analysis := ParsePhysicsAnalysis(raw)
	if analysis.Conceptual {
		text, err := h.llm.Complete(ctx, fmt.Sprintf(physicsConceptualPrompt, query))
		if err != nil {
			return PhysicsAnswer{}, err
		}
		return PhysicsAnswer{Kind: TypeConceptual, Response: text}, nil
	}

	used := h.resolve(analysis.Tokens)
	log.WithField("tokens", len(analysis.Tokens)).
		WithField("resolved", len(used)).
		Debug("physics constants")
	if len(used) == 0 {
		return PhysicsAnswer{Kind: TypeError, Response: UnresolvedConstantsMessage}, nil
	}

	text, err := h.llm.Complete(ctx, fmt.Sprintf(physicsConstantsPrompt, formatConstants(used), query))
	if err != nil {
		return PhysicsAnswer{}, err
	}
	return PhysicsAnswer{Kind: TypeConstants, Response: text, Constants: used}, nil
}

// resolve maps each token that the table knows to its entry; the rest are dropped.
func (h *PhysicsHandler) resolve(tokens []string) map[string]constants.Entry {
	used := make(map[string]constants.Entry, len(tokens))
	for _, tok := range tokens {
		if e, ok := h.table.Lookup(tok); ok {
			used[tok] = e
		}
	}
	return used
}
