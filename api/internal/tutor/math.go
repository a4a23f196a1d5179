package tutor

import (
	"context"
	"fmt"

	"tutor-bot/api/internal/logging"
)

// MathHandler answers mathematics queries with two sequential completions:
// a category classification and a category specific generation.
type MathHandler struct {
	llm Completer
}

func NewMathHandler(c Completer) *MathHandler {
	return &MathHandler{llm: c}
}

func (h *MathHandler) Process(ctx context.Context, query string) (MathAnswer, error) {
	label, err := h.llm.Complete(ctx, fmt.Sprintf(mathCategoryPrompt, query))
	if err != nil {
		return MathAnswer{}, err
	}
	cat, exact := ParseMathCategory(label)
	logging.FromContext(ctx).
		WithField("label", label).
		WithField("category", cat).
		WithField("exact", exact).
		Debug("math category")

	switch cat {
	case MathConceptual:
		text, err := h.llm.Complete(ctx, fmt.Sprintf(mathConceptualPrompt, query))
		if err != nil {
			return MathAnswer{}, err
		}
		return MathAnswer{Kind: TypeConceptual, Response: text}, nil

	case MathEquation:
		text, err := h.llm.Complete(ctx, fmt.Sprintf(mathEquationPrompt, query))
		if err != nil {
			return MathAnswer{}, err
		}
		return MathAnswer{Kind: TypeEquation, Response: text}, nil

	case MathFormula:
		text, err := h.llm.Complete(ctx, fmt.Sprintf(mathFormulaPrompt, query))
		if err != nil {
			return MathAnswer{}, err
		}
		return MathAnswer{
			Kind:         TypeFormula,
			Response:     text,
			Calculations: &Calculations{Query: query, Result: text},
		}, nil

	default:
		// MathCalculation, включая нераспознанные метки
		text, err := h.llm.Complete(ctx, fmt.Sprintf(mathCalculationPrompt, query))
		if err != nil {
			return MathAnswer{}, err
		}
		return MathAnswer{
			Kind:         TypeCalculation,
			Response:     text,
			Calculations: &Calculations{Query: query, Result: text},
		}, nil
	}
}
