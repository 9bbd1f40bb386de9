// Command golps solves linear programs described in YAML or JSON files.
//
//	golps solve problem.yaml
//	golps solve -o yaml - < problem.json
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "golps",
		Short:        "Solve linear programs with a two-phase simplex",
		SilenceUsage: true,
	}
	root.AddCommand(newSolveCommand())

	return root
}

type solveOptions struct {
	tolerance     float64
	maxIterations int
	verbose       bool
	output        string
}

func newSolveCommand() *cobra.Command {
	var opts solveOptions

	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve the problem in FILE (- for stdin)",
		Long: `Solve the linear program in FILE and print its status, optimal value,
variable values, shadow prices and slacks.

The file is YAML (JSON works as well):

  sense: max
  variables: [x1, x2]
  objective: [3, 5]
  constraints:
    - name: plant1
      coefficients: [1, 0]
      operator: "<="
      rhs: 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case "text", "yaml", "json":
			default:
				return fmt.Errorf("unknown output format %q", opts.output)
			}
			return runSolve(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&opts.tolerance, "tolerance", 1e-9, "values within this distance of zero count as zero")
	flags.IntVar(&opts.maxIterations, "max-iterations", 10000, "abort after this many pivots (0 for no limit)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log phases and pivots to stderr")
	flags.StringVarP(&opts.output, "output", "o", "text", "output format: text, yaml or json")

	return cmd
}
