// Package tutor routes a free-text question to a subject handler and shapes the
// model output into a QueryResult.
//
// Every query is handled by a sequential chain of completions: subject
// classification first, then the handler's own calls. Completion errors are
// returned unchanged and nothing is retried.
package tutor

import (
	"context"
	"fmt"

	"tutor-bot/api/internal/constants"
	"tutor-bot/api/internal/logging"
)

// Completer is the only thing the tutor needs from a model backend.
// llm.Engine satisfies it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Coordinator struct {
	llm     Completer
	math    *MathHandler
	physics *PhysicsHandler
}

// New wires a Coordinator and both subject handlers to the same completer.
func New(c Completer, table *constants.Table) *Coordinator {
	return &Coordinator{
		llm:     c,
		math:    NewMathHandler(c),
		physics: NewPhysicsHandler(c, table),
	}
}

// Process classifies query once and dispatches it. query must be non-empty
// (see ValidateQuery).
func (c *Coordinator) Process(ctx context.Context, query string) (QueryResult, error) {
	label, err := c.llm.Complete(ctx, fmt.Sprintf(subjectPrompt, query))
	if err != nil {
		return QueryResult{}, err
	}
	subject := ParseSubject(label)
	logging.FromContext(ctx).
		WithField("label", label).
		WithField("subject", subject).
		Debug("subject classified")

	switch subject {
	case SubjectMathematics:
		ans, err := c.math.Process(ctx, query)
		if err != nil {
			return QueryResult{}, err
		}
		return QueryResult{Agent: AgentMath, Subject: SubjectMathematics, Answer: ans}, nil

	case SubjectPhysics:
		ans, err := c.physics.Process(ctx, query)
		if err != nil {
			return QueryResult{}, err
		}
		return QueryResult{Agent: AgentPhysics, Subject: SubjectPhysics, Answer: ans}, nil

	default:
		text, err := c.llm.Complete(ctx, fmt.Sprintf(generalPrompt, query))
		if err != nil {
			return QueryResult{}, err
		}
		return QueryResult{Agent: AgentGeneral, Subject: SubjectOther, Answer: GeneralAnswer{Response: text}}, nil
	}
}
