package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tutor-bot/api/internal/calculator"
)

func (a *app) calcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calc <number> <operator> <number>",
		Short: "Evaluate a single binary arithmetic expression locally",
		Long: "Evaluate \"<number> <operator> <number>\" without calling a model.\n" +
			"Operators: " + strings.Join(calculator.Operators(), " "),
		Example: `  tutor calc 2 ** 10
  tutor calc -5 + 3
  tutor calc -o json "9 / 2"`,
		// "-5" is an operand, not a shorthand flag
		DisableFlagParsing: true,
		Args:               cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			operands, help, err := a.calcArgs(args)
			if err != nil {
				return err
			}
			if help {
				return cmd.Help()
			}

			expr := strings.Join(operands, " ")
			res, err := calculator.Calculate(expr)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(map[string]any{"expression": expr, "result": res})
			}
			_, err = fmt.Fprintln(a.deps.Out, strconv.FormatFloat(res, 'g', -1, 64))
			return err
		},
	}
}

// calcArgs picks the global flags out of raw calc arguments; the rest are
// operands.
func (a *app) calcArgs(args []string) (operands []string, help bool, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(operands, args[i+1:]...), help, nil
		case arg == "-h" || arg == "--help":
			help = true
		case arg == "-v" || arg == "--verbose":
			a.verbose = true
		case arg == "-o" || arg == "--output":
			if i+1 >= len(args) {
				return nil, false, fmt.Errorf("flag needs an argument: %s", arg)
			}
			i++
			a.output = args[i]
		case strings.HasPrefix(arg, "--output="):
			a.output = strings.TrimPrefix(arg, "--output=")
		case strings.HasPrefix(arg, "-o") && len(arg) > 2:
			a.output = arg[2:]
		default:
			operands = append(operands, arg)
		}
	}
	return operands, help, nil
}
