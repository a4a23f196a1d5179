// Package bootstrap builds the pieces every binary shares from a config.Config.
package bootstrap

import (
	"context"

	"github.com/sirupsen/logrus"

	"tutor-bot/api/internal/config"
	"tutor-bot/api/internal/llm"
	"tutor-bot/api/internal/llm/gemini"
	"tutor-bot/api/internal/llm/openai"
	"tutor-bot/api/internal/store"
)

// Engines returns Gemini plus OpenAI when OPENAI_API_KEY is set.
func Engines(cfg *config.Config) *llm.Engines {
	engs := &llm.Engines{
		Gemini:  gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		Default: cfg.DefaultEngine,
	}
	if cfg.OpenAIAPIKey != "" {
		engs.OpenAI = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	return engs
}

// QueryLog opens the journal when DATABASE_URL is set. With the journal
// disabled the log is nil and the closer is a no-op.
func QueryLog(ctx context.Context, cfg *config.Config) (*store.QueryLog, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, func() {}, nil
	}
	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	ql := store.NewQueryLog(db)
	if err := ql.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	logrus.Infof("query journal: %s", store.SafeDSNSummary(cfg.DatabaseURL))
	return ql, func() { _ = db.Close() }, nil
}
