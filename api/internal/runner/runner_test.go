package runner

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutor-bot/api/internal/llm/llmtest"
	"tutor-bot/api/internal/logging"
	"tutor-bot/api/internal/store"
	"tutor-bot/api/internal/tutor"
)

type memJournal struct {
	mu   sync.Mutex
	recs []store.QueryRecord
	err  error
}

func (m *memJournal) Record(_ context.Context, rec store.QueryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	return m.err
}

func TestAsk_RecordsSuccess(t *testing.T) {
	j := &memJournal{}
	r := New(nil, j)
	eng := llmtest.NewScripted("other", "Paris.").WithName("gemini")
	ctx := logging.WithRequestID(context.Background(), "req-7")

	res, err := r.Ask(ctx, SourceHTTP, eng, "Capital of France?")
	require.NoError(t, err)
	assert.Equal(t, tutor.AgentGeneral, res.Agent)

	require.Len(t, j.recs, 1)
	rec := j.recs[0]
	assert.Equal(t, "req-7", rec.RequestID)
	assert.Equal(t, SourceHTTP, rec.Source)
	assert.Equal(t, "gemini", rec.Engine)
	assert.Equal(t, "scripted-1", rec.Model)
	assert.Equal(t, "Capital of France?", rec.Query)
	assert.Equal(t, "general", rec.Agent)
	assert.Equal(t, "other", rec.Subject)
	assert.Equal(t, "general", rec.Type)
	assert.Empty(t, rec.Error)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Result, &body))
	assert.Equal(t, "Paris.", body["response"])
}

func TestAsk_RecordsFailure(t *testing.T) {
	j := &memJournal{}
	boom := errors.New("upstream 503")
	eng := llmtest.NewScripted().ThenFail(boom)

	_, err := New(nil, j).Ask(context.Background(), SourceCLI, eng, "q")
	assert.ErrorIs(t, err, boom)
	require.Len(t, j.recs, 1)
	assert.Equal(t, "upstream 503", j.recs[0].Error)
	assert.Nil(t, j.recs[0].Result)
}

func TestAsk_EmptyQuery(t *testing.T) {
	j := &memJournal{}
	eng := llmtest.NewScripted()

	_, err := New(nil, j).Ask(context.Background(), SourceHTTP, eng, "   ")
	assert.ErrorIs(t, err, tutor.ErrEmptyQuery)
	assert.Zero(t, eng.Calls())
	assert.Empty(t, j.recs)
}

func TestAsk_JournalErrorDoesNotFailQuery(t *testing.T) {
	j := &memJournal{err: errors.New("disk full")}
	eng := llmtest.NewScripted("other", "ok")

	res, err := New(nil, j).Ask(context.Background(), SourceHTTP, eng, "q")
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Response())
}

func TestAsk_NoJournal(t *testing.T) {
	eng := llmtest.NewScripted("mathematics", "conceptual", "A prime is ...")
	res, err := New(nil, nil).Ask(context.Background(), SourceTelegram, eng, "What is a prime?")
	require.NoError(t, err)
	assert.Equal(t, tutor.TypeConceptual, res.Type())
}

func TestRecord_UnencodableResultIsLogged(t *testing.T) {
	hook := logtest.NewGlobal()
	t.Cleanup(func() { logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks)) })

	j := &memJournal{}
	r := New(nil, j)
	res := tutor.QueryResult{Agent: tutor.AgentMath, Subject: tutor.SubjectMathematics}

	r.record(context.Background(), SourceCLI, llmtest.NewScripted(), "q", res, nil, 0)

	require.Len(t, j.recs, 1)
	assert.Nil(t, j.recs[0].Result)
	assert.Equal(t, "math", j.recs[0].Agent)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "query journal: result not encoded" {
			warned = true
			assert.ErrorContains(t, e.Data[logrus.ErrorKey].(error), "unexpected answer")
		}
	}
	assert.True(t, warned)
}
