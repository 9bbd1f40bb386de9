package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/costela/golps"
)

// problemFile is the on-disk problem description.
type problemFile struct {
	Sense       string           `yaml:"sense"`
	Variables   []string         `yaml:"variables"`
	Objective   []float64        `yaml:"objective"`
	Constraints []constraintFile `yaml:"constraints"`
}

type constraintFile struct {
	Name         string         `yaml:"name"`
	Coefficients []float64      `yaml:"coefficients"`
	Operator     golps.Operator `yaml:"operator"`
	RHS          float64        `yaml:"rhs"`
}

// decodeProblem reads a problem description. JSON is a subset of YAML, so
// both are accepted.
func decodeProblem(r io.Reader) (*golps.Problem, error) {
	var f problemFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, errors.New("empty problem file")
		}
		return nil, errors.Wrap(err, "decoding problem")
	}

	return f.problem()
}

func (f problemFile) problem() (*golps.Problem, error) {
	dir, err := golps.ParseDirection(f.Sense)
	if err != nil {
		return nil, err
	}

	matrix := make([][]float64, len(f.Constraints))
	rhs := make([]float64, len(f.Constraints))
	ops := make([]golps.Operator, len(f.Constraints))
	names := make([]string, len(f.Constraints))
	for i, c := range f.Constraints {
		matrix[i] = c.Coefficients
		rhs[i] = c.RHS
		ops[i] = c.Operator
		names[i] = c.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("c%d", i+1)
		}
	}

	opts := []golps.ProblemOption{golps.ConstraintNames(names...)}
	if len(f.Variables) > 0 {
		opts = append(opts, golps.VariableNames(f.Variables...))
	}

	return golps.NewProblem(f.Objective, matrix, rhs, ops, dir, opts...)
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(path)
}

func runSolve(cmd *cobra.Command, path string, opts solveOptions) error {
	in, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer in.Close()

	problem, err := decodeProblem(in)
	if err != nil {
		return errors.Wrap(err, path)
	}

	solveOpts := []golps.Option{
		golps.WithTolerance(opts.tolerance),
		golps.WithMaxIterations(opts.maxIterations),
	}
	if opts.verbose {
		solveOpts = append(solveOpts, golps.WithLogger(log.New(cmd.ErrOrStderr(), "golps: ", 0)))
	}

	res, err := problem.Solve(cmd.Context(), solveOpts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.output {
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(res.Report())
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Report())
	default:
		return writeText(out, problem, res)
	}
}

func writeText(w io.Writer, problem *golps.Problem, res *golps.SolveResult) error {
	fmt.Fprintf(w, "Status: %s\n", res.Status())
	if !res.Optimal() {
		return nil
	}
	fmt.Fprintf(w, "Optimal value (z*) = %.4f\n", res.ObjectiveValue())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	values, reduced := res.Values(), res.ReducedCosts()
	fmt.Fprintln(tw, "\nVARIABLE\tVALUE\tREDUCED COST")
	for j, name := range problem.VariableNames() {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\n", name, values[j], reduced[j])
	}

	if problem.ConstraintCount() > 0 {
		fmt.Fprintln(tw, "\nCONSTRAINT\tSHADOW PRICE\tSLACK")
		for i, name := range problem.ConstraintNames() {
			fmt.Fprintf(tw, "%s\t%.4f\t%.4f\n", name, res.Dual(i), res.Slack(i))
		}
	}

	return tw.Flush()
}
