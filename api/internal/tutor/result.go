package tutor

import (
	"encoding/json"
	"fmt"

	"tutor-bot/api/internal/constants"
)

// ResultType is the "type" field of a served answer.
type ResultType string

const (
	TypeConceptual  ResultType = "conceptual"
	TypeEquation    ResultType = "equation"
	TypeFormula     ResultType = "formula"
	TypeCalculation ResultType = "calculation"
	TypeConstants   ResultType = "constants"
	TypeError       ResultType = "error"
	TypeGeneral     ResultType = "general"
)

// UnresolvedConstantsMessage is the in-band response when no constant resolved.
const UnresolvedConstantsMessage = "Could not identify relevant physical constants for this query."

// Answer is implemented by MathAnswer, PhysicsAnswer and GeneralAnswer only.
type Answer interface {
	ResultType() ResultType
	Text() string
	isAnswer()
}

type Calculations struct {
	Query  string `json:"query"`
	Result string `json:"result"`
}

// MathAnswer is what MathHandler produces. Calculations is set for formula and
// calculation answers and then duplicates Response in Result.
type MathAnswer struct {
	Kind         ResultType    `json:"type"`
	Response     string        `json:"response"`
	Calculations *Calculations `json:"calculations"`
}

func (a MathAnswer) ResultType() ResultType { return a.Kind }
func (a MathAnswer) Text() string           { return a.Response }
func (MathAnswer) isAnswer()                {}

// PhysicsAnswer is what PhysicsHandler produces. Constants is keyed by the
// token text the model returned, not by the canonical table name.
type PhysicsAnswer struct {
	Kind      ResultType                 `json:"type"`
	Response  string                     `json:"response"`
	Constants map[string]constants.Entry `json:"constants"`
}

func (a PhysicsAnswer) ResultType() ResultType { return a.Kind }
func (a PhysicsAnswer) Text() string           { return a.Response }
func (PhysicsAnswer) isAnswer()                {}

type GeneralAnswer struct {
	Response string `json:"response"`
}

func (GeneralAnswer) ResultType() ResultType { return TypeGeneral }
func (a GeneralAnswer) Text() string         { return a.Response }
func (GeneralAnswer) isAnswer()              {}

// QueryResult is the routed answer together with routing metadata.
type QueryResult struct {
	Agent   Agent
	Subject Subject
	Answer  Answer
}

type envelope struct {
	Agent   Agent   `json:"agent"`
	Subject Subject `json:"subject"`
}

// MarshalJSON flattens the answer next to agent and subject.
func (r QueryResult) MarshalJSON() ([]byte, error) {
	env := envelope{Agent: r.Agent, Subject: r.Subject}
	switch a := r.Answer.(type) {
	case MathAnswer:
		return json.Marshal(struct {
			envelope
			MathAnswer
		}{env, a})
	case PhysicsAnswer:
		return json.Marshal(struct {
			envelope
			PhysicsAnswer
		}{env, a})
	case GeneralAnswer:
		return json.Marshal(struct {
			envelope
			Type ResultType `json:"type"`
			GeneralAnswer
		}{env, TypeGeneral, a})
	default:
		return nil, fmt.Errorf("tutor: unexpected answer %T", r.Answer)
	}
}

// Type is a shortcut for Answer.ResultType.
func (r QueryResult) Type() ResultType {
	if r.Answer == nil {
		return ""
	}
	return r.Answer.ResultType()
}

// Response is a shortcut for Answer.Text.
func (r QueryResult) Response() string {
	if r.Answer == nil {
		return ""
	}
	return r.Answer.Text()
}
