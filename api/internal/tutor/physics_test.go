package tutor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutor-bot/api/internal/constants"
	"tutor-bot/api/internal/llm/llmtest"
	"tutor-bot/api/internal/tutor"
)

func TestPhysicsHandler_Conceptual(t *testing.T) {
	llm := llmtest.NewScripted("Conceptual", "Inertia is ...")
	ans, err := tutor.NewPhysicsHandler(llm, nil).Process(context.Background(), "What is inertia?")
	require.NoError(t, err)

	assert.Equal(t, tutor.TypeConceptual, ans.Kind)
	assert.Equal(t, "Inertia is ...", ans.Response)
	assert.Nil(t, ans.Constants)
	require.Len(t, llm.Prompts(), 2)
	assert.Contains(t, llm.Prompts()[1], "physics concept")
}

func TestPhysicsHandler_ResolvesConstants(t *testing.T) {
	llm := llmtest.NewScripted("speed_of_light, gravitational_constant", "explanation")
	ans, err := tutor.NewPhysicsHandler(llm, constants.New()).Process(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, tutor.TypeConstants, ans.Kind)
	assert.Equal(t, "explanation", ans.Response)
	require.Len(t, ans.Constants, 2)
	assert.Contains(t, ans.Constants, "speed_of_light")
	assert.Contains(t, ans.Constants, "gravitational_constant")

	prompts := llm.Prompts()
	require.Len(t, prompts, 2)
	assert.Contains(t, prompts[1], "299792458.0")
	assert.Contains(t, prompts[1], "6.6743e-11")
}

func TestPhysicsHandler_KeysKeepTokenText(t *testing.T) {
	llm := llmtest.NewScripted("Speed of Light , unobtainium, Planck Constant", "ok")
	ans, err := tutor.NewPhysicsHandler(llm, nil).Process(context.Background(), "q")
	require.NoError(t, err)

	require.Len(t, ans.Constants, 2)
	assert.Equal(t, "m/s", ans.Constants["Speed of Light"].Unit)
	assert.Equal(t, "6.62607015e-34", ans.Constants["Planck Constant"].Value)
	assert.NotContains(t, ans.Constants, "speed_of_light")
}

func TestPhysicsHandler_Unresolved(t *testing.T) {
	llm := llmtest.NewScripted("nonsense_token")
	ans, err := tutor.NewPhysicsHandler(llm, nil).Process(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, tutor.TypeError, ans.Kind)
	assert.Equal(t, "Could not identify relevant physical constants for this query.", ans.Response)
	assert.Nil(t, ans.Constants)
	assert.Equal(t, 1, llm.Calls(), "no explanation call for an unresolved analysis")
}

func TestPhysicsHandler_PropagatesErrors(t *testing.T) {
	boom := errors.New("transport down")
	llm := llmtest.NewScripted("planck_constant").ThenFail(boom)

	_, err := tutor.NewPhysicsHandler(llm, nil).Process(context.Background(), "q")
	assert.ErrorIs(t, err, boom)
}
