package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tutor-bot/api/internal/constants"
	"tutor-bot/api/internal/logging"
	"tutor-bot/api/internal/runner"
	"tutor-bot/api/internal/tutor"
)

type modelSetter interface{ SetModel(string) }

func (a *app) askCmd() *cobra.Command {
	var (
		llmName string
		model   string
		timeout time.Duration
		journal bool
	)
	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the tutor a question",
		Example: `  tutor ask "What is the speed of light?"
  tutor ask --llm gpt -o json Solve 2x + 3 = 11`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if err := tutor.ValidateQuery(query); err != nil {
				return err
			}

			engs, err := a.deps.Engines()
			if err != nil {
				return err
			}
			eng, err := engs.GetEngine(llmName)
			if err != nil {
				return err
			}
			if model != "" {
				if ms, ok := eng.(modelSetter); ok {
					ms.SetModel(model)
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			ctx = logging.WithRequestID(ctx, "")

			var j runner.Journal
			if journal {
				ql, closeFn, err := a.deps.OpenJournal(ctx)
				if err != nil {
					return err
				}
				defer closeFn()
				if ql != nil {
					j = ql
				}
			}

			res, err := runner.New(constants.Default, j).Ask(ctx, runner.SourceCLI, eng, query)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(res)
			}
			return a.printResult(res)
		},
	}
	cmd.Flags().StringVar(&llmName, "llm", "", "Engine to use (gemini, gpt)")
	cmd.Flags().StringVar(&model, "model", "", "Override the engine model")
	cmd.Flags().DurationVar(&timeout, "timeout", 70*time.Second, "Deadline for the whole query")
	cmd.Flags().BoolVar(&journal, "journal", false, "Record the query in the journal (needs DATABASE_URL)")
	return cmd
}

func (a *app) printResult(res tutor.QueryResult) error {
	out := a.deps.Out
	fmt.Fprintf(out, "[%s/%s] %s\n\n", res.Agent, res.Subject, res.Type())
	fmt.Fprintln(out, strings.TrimSpace(res.Response()))

	if pa, ok := res.Answer.(tutor.PhysicsAnswer); ok && len(pa.Constants) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Constants:")
		for _, k := range sortedKeys(pa.Constants) {
			e := pa.Constants[k]
			fmt.Fprintf(out, "  %s = %s %s\n", k, e.Value, e.Unit)
		}
	}
	return nil
}
