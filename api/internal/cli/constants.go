package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tutor-bot/api/internal/constants"
)

func (a *app) constantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "constants [name]",
		Short: "List physical constants or look one up",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				e, ok := constants.Default.Lookup(args[0])
				if !ok {
					return fmt.Errorf("unknown constant %q", args[0])
				}
				if a.jsonOutput() {
					return a.printJSON(e)
				}
				_, err := fmt.Fprintf(a.deps.Out, "%s %s (%s)\n", e.Value, e.Unit, e.Description)
				return err
			}

			all := constants.Default.All()
			if a.jsonOutput() {
				return a.printJSON(all)
			}
			tw := tabwriter.NewWriter(a.deps.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tVALUE\tUNIT\tDESCRIPTION")
			for _, name := range constants.Default.Names() {
				e := all[name]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, e.Value, e.Unit, e.Description)
			}
			return tw.Flush()
		},
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
