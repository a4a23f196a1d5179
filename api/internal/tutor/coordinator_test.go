package tutor_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutor-bot/api/internal/llm/llmtest"
	"tutor-bot/api/internal/tutor"
)

func TestCoordinator_Routing(t *testing.T) {
	tests := []struct {
		name        string
		replies     []string
		wantAgent   tutor.Agent
		wantSubject tutor.Subject
		wantType    tutor.ResultType
		wantCalls   int
	}{
		{"math", []string{"Mathematics", "equation", "x = 2"}, tutor.AgentMath, tutor.SubjectMathematics, tutor.TypeEquation, 3},
		{"physics", []string{" physics ", "conceptual", "because"}, tutor.AgentPhysics, tutor.SubjectPhysics, tutor.TypeConceptual, 3},
		{"other", []string{"other", "Paris."}, tutor.AgentGeneral, tutor.SubjectOther, tutor.TypeGeneral, 2},
		{"trailing punctuation", []string{"mathematics.", "Answer."}, tutor.AgentGeneral, tutor.SubjectOther, tutor.TypeGeneral, 2},
		{"empty label", []string{"", "Answer."}, tutor.AgentGeneral, tutor.SubjectOther, tutor.TypeGeneral, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := llmtest.NewScripted(tt.replies...)
			res, err := tutor.New(llm, nil).Process(context.Background(), "some question")
			require.NoError(t, err)

			assert.Equal(t, tt.wantAgent, res.Agent)
			assert.Equal(t, tt.wantSubject, res.Subject)
			assert.Equal(t, tt.wantType, res.Type())
			assert.Equal(t, tt.replies[len(tt.replies)-1], res.Response())
			assert.Equal(t, tt.wantCalls, llm.Calls())
			assert.Contains(t, llm.Prompts()[0], "'mathematics'")
		})
	}
}

func TestCoordinator_SpeedOfLight(t *testing.T) {
	llm := llmtest.NewScripted("physics", "speed_of_light", "Light travels at 299,792,458 m/s.")
	res, err := tutor.New(llm, nil).Process(context.Background(), "What is the speed of light?")
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "physics", got["agent"])
	assert.Equal(t, "physics", got["subject"])
	assert.Equal(t, "constants", got["type"])
	assert.Equal(t, "Light travels at 299,792,458 m/s.", got["response"])

	consts, ok := got["constants"].(map[string]any)
	require.True(t, ok)
	require.Len(t, consts, 1)
	sol := consts["speed_of_light"].(map[string]any)
	assert.Equal(t, "299792458.0", sol["value"])
	assert.Equal(t, "m/s", sol["unit"])
	assert.Equal(t, "Speed of light in vacuum", sol["description"])
}

func TestCoordinator_PropagatesClassifierError(t *testing.T) {
	boom := errors.New("429 quota")
	llm := llmtest.NewScripted().ThenFail(boom)

	_, err := tutor.New(llm, nil).Process(context.Background(), "q")
	assert.Same(t, boom, err)
	assert.Equal(t, 1, llm.Calls())
}

func TestCoordinator_PropagatesFallbackError(t *testing.T) {
	boom := errors.New("timeout")
	llm := llmtest.NewScripted("history").ThenFail(boom)

	_, err := tutor.New(llm, nil).Process(context.Background(), "Who was Napoleon?")
	assert.ErrorIs(t, err, boom)
}

func TestCoordinator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tutor.New(llmtest.NewScripted("physics"), nil).Process(ctx, "q")
	assert.ErrorIs(t, err, context.Canceled)
}
