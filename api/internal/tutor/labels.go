package tutor

import (
	"errors"
	"strings"
)

// ErrEmptyQuery is returned by ValidateQuery for blank input. The text is the
// client-facing "detail" message and is sent as is, capital letter included.
var ErrEmptyQuery = errors.New("Query cannot be empty")

// ValidateQuery rejects whitespace-only input. Transports call it before Process;
// the query itself is passed on untrimmed.
func ValidateQuery(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyQuery
	}
	return nil
}

type Subject string

const (
	SubjectMathematics Subject = "mathematics"
	SubjectPhysics     Subject = "physics"
	SubjectOther       Subject = "other"
)

// ParseSubject decodes the subject classifier output. Only an exact match after
// trim+lowercase counts, everything else is SubjectOther.
func ParseSubject(text string) Subject {
	switch Subject(normalizeLabel(text)) {
	case SubjectMathematics:
		return SubjectMathematics
	case SubjectPhysics:
		return SubjectPhysics
	default:
		return SubjectOther
	}
}

type Agent string

const (
	AgentMath    Agent = "math"
	AgentPhysics Agent = "physics"
	AgentGeneral Agent = "general"
)

type MathCategory string

const (
	MathEquation    MathCategory = "equation"
	MathCalculation MathCategory = "calculation"
	MathFormula     MathCategory = "formula"
	MathConceptual  MathCategory = "conceptual"
)

// ParseMathCategory decodes the math classifier output. Anything that is not an
// exact label maps to MathCalculation; ok reports whether the label was exact.
func ParseMathCategory(text string) (cat MathCategory, ok bool) {
	switch c := MathCategory(normalizeLabel(text)); c {
	case MathEquation, MathCalculation, MathFormula, MathConceptual:
		return c, true
	default:
		return MathCalculation, false
	}
}

const physicsConceptual = "conceptual"

// PhysicsAnalysis is either Conceptual or a list of constant-name tokens.
type PhysicsAnalysis struct {
	Conceptual bool
	Tokens     []string
}

// ParsePhysicsAnalysis splits a comma separated list of constant names. Tokens
// keep their case; empty tokens are skipped.
func ParsePhysicsAnalysis(text string) PhysicsAnalysis {
	text = strings.TrimSpace(text)
	if strings.ToLower(text) == physicsConceptual {
		return PhysicsAnalysis{Conceptual: true}
	}
	var toks []string
	for _, t := range strings.Split(text, ",") {
		if t = strings.TrimSpace(t); t != "" {
			toks = append(toks, t)
		}
	}
	return PhysicsAnalysis{Tokens: toks}
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
