// Package runner executes one tutor query for a transport: validation, timing,
// logging and the optional query journal.
package runner

import (
	"context"
	"encoding/json"
	"time"

	"tutor-bot/api/internal/constants"
	"tutor-bot/api/internal/llm"
	"tutor-bot/api/internal/logging"
	"tutor-bot/api/internal/store"
	"tutor-bot/api/internal/tutor"
)

const (
	SourceHTTP     = "http"
	SourceTelegram = "telegram"
	SourceCLI      = "cli"
)

// Journal receives a record of every query. store.QueryLog implements it.
type Journal interface {
	Record(ctx context.Context, rec store.QueryRecord) error
}

type Runner struct {
	Table   *constants.Table
	Journal Journal // nil disables the journal
}

func New(table *constants.Table, journal Journal) *Runner {
	if table == nil {
		table = constants.Default
	}
	return &Runner{Table: table, Journal: journal}
}

// Ask answers query with eng. Blank queries fail with tutor.ErrEmptyQuery before
// any completion is issued.
func (r *Runner) Ask(ctx context.Context, source string, eng llm.Engine, query string) (tutor.QueryResult, error) {
	if err := tutor.ValidateQuery(query); err != nil {
		return tutor.QueryResult{}, err
	}
	log := logging.FromContext(ctx).
		WithField("source", source).
		WithField("engine", eng.Name())

	start := time.Now()
	res, err := tutor.New(eng, r.Table).Process(ctx, query)
	took := time.Since(start)

	if err != nil {
		log.WithError(err).WithField("took", took.Round(time.Millisecond)).Error("query failed")
	} else {
		log.WithField("agent", res.Agent).
			WithField("type", res.Type()).
			WithField("took", took.Round(time.Millisecond)).
			Info("query served")
	}

	r.record(ctx, source, eng, query, res, err, took)
	return res, err
}

func (r *Runner) record(ctx context.Context, source string, eng llm.Engine, query string, res tutor.QueryResult, qerr error, took time.Duration) {
	if r.Journal == nil {
		return
	}
	rec := store.QueryRecord{
		RequestID:  logging.RequestID(ctx),
		Source:     source,
		Engine:     eng.Name(),
		Model:      eng.GetModel(),
		Query:      query,
		DurationMs: took.Milliseconds(),
	}
	if qerr != nil {
		rec.Error = qerr.Error()
	} else {
		rec.Agent = string(res.Agent)
		rec.Subject = string(res.Subject)
		rec.Type = string(res.Type())
		data, err := json.Marshal(res)
		if err != nil {
			logging.FromContext(ctx).WithError(err).Warn("query journal: result not encoded")
		}
		rec.Result = data
	}

	// журнал не должен зависеть от дедлайна запроса
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := r.Journal.Record(wctx, rec); err != nil {
		logging.FromContext(ctx).WithError(err).Warn("query journal write failed")
	}
}
