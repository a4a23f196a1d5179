package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (a *app) journalCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show the most recent served queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ql, closeFn, err := a.deps.OpenJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			if ql == nil {
				return errors.New("query journal is disabled; set DATABASE_URL")
			}

			recs, err := ql.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(recs)
			}

			tw := tabwriter.NewWriter(a.deps.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tSOURCE\tENGINE\tAGENT\tTYPE\tMS\tQUERY")
			for _, r := range recs {
				kind := r.Type
				if r.Error != "" {
					kind = "ERROR"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
					r.CreatedAt.Local().Format(time.DateTime), r.Source, r.Engine, r.Agent, kind, r.DurationMs, clip(r.Query, 60))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of rows")
	return cmd
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
