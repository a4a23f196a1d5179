// Package cli implements the tutor command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tutor-bot/api/internal/bootstrap"
	"tutor-bot/api/internal/config"
	"tutor-bot/api/internal/llm"
	"tutor-bot/api/internal/logging"
	"tutor-bot/api/internal/store"
)

// Deps are the collaborators commands need. Zero fields fall back to the
// environment-driven defaults.
type Deps struct {
	Out         io.Writer
	Engines     func() (*llm.Engines, error)
	OpenJournal func(ctx context.Context) (*store.QueryLog, func(), error)
}

type app struct {
	deps    Deps
	output  string
	verbose bool
}

// NewRootCmd builds the "tutor" command tree.
func NewRootCmd(deps Deps) *cobra.Command {
	a := &app{deps: deps}
	if a.deps.Out == nil {
		a.deps.Out = os.Stdout
	}
	if a.deps.Engines == nil {
		a.deps.Engines = func() (*llm.Engines, error) {
			cfg, err := loadConfig()
			if err != nil {
				return nil, err
			}
			return bootstrap.Engines(cfg), nil
		}
	}
	if a.deps.OpenJournal == nil {
		a.deps.OpenJournal = func(ctx context.Context) (*store.QueryLog, func(), error) {
			cfg, err := loadConfig()
			if err != nil {
				return nil, nil, err
			}
			return bootstrap.QueryLog(ctx, cfg)
		}
	}

	root := &cobra.Command{
		Use:   "tutor",
		Short: "Math and physics tutor backed by an LLM",
		Long: `tutor routes a question to a math or physics handler and prints the answer.

Environment:
  GEMINI_API_KEY   required for ask
  OPENAI_API_KEY   enables --llm gpt
  DATABASE_URL     query journal (postgres://... or a SQLite path)`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if a.verbose {
				level = "debug"
			}
			logging.Setup(level, cmd.ErrOrStderr())
		},
	}
	root.SetOut(a.deps.Out)
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "text", "Output format (text, json)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.askCmd(),
		a.constantsCmd(),
		a.calcCmd(),
		a.journalCmd(),
	)
	return root
}

// Execute runs the CLI with default dependencies.
func Execute() {
	if err := NewRootCmd(Deps{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	config.LoadDotEnv()
	return config.Load()
}

func (a *app) jsonOutput() bool { return a.output == "json" }

func (a *app) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(a.deps.Out, string(data))
	return err
}
