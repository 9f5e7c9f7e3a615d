// Command formulacheck validates a model formula against a dataset's
// column schema from the command line, mirroring the checks the StatBox
// equation editor runs in the browser.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/statbox/formula"
	"github.com/statbox/formula/schema"
)

// Exit code constants
const (
	ExitClean       = 0
	ExitDiagnostics = 1
	ExitUsage       = 2
)

func main() {
	var (
		dataFile   string
		schemaFile string
		useStdin   bool
		watch      bool
		printFix   bool
		hadErrors  bool
	)

	rootCmd := &cobra.Command{
		Use:   "formulacheck [formula]",
		Short: "Validate a model formula against a dataset schema",
		Long: `Validate a statistical model formula (response ~ predictors) against
the column schema of a dataset. The schema comes from a CSV dataset
header (--data) or a TOML/JSON schema file (--schema).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readFormula(args, useStdin)
			if err != nil {
				return err
			}
			vars, watcher, err := loadVars(dataFile, schemaFile, watch)
			if err != nil {
				return err
			}
			if watcher != nil {
				defer func() { _ = watcher.Close() }()
				return runWatch(cmd.OutOrStdout(), cmd.ErrOrStderr(), input, vars, watcher)
			}
			hadErrors = runOnce(cmd.OutOrStdout(), input, vars, printFix)
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&dataFile, "data", "d", "", "Dataset CSV file; variables come from its header")
	rootCmd.Flags().StringVarP(&schemaFile, "schema", "s", "", "Schema file (.toml or .json) describing the dataset variables")
	rootCmd.Flags().BoolVar(&useStdin, "stdin", false, "Read the formula from standard input")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Revalidate whenever the dataset or schema file changes")
	rootCmd.Flags().BoolVar(&printFix, "fix", false, "Print the corrected formula instead of diagnostics")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitUsage)
	}
	if hadErrors {
		os.Exit(ExitDiagnostics)
	}
}

func readFormula(args []string, useStdin bool) (string, error) {
	if useStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading formula from stdin: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("no formula given (pass one as an argument or use --stdin)")
	}
	return args[0], nil
}

// loadVars resolves the variable schema from whichever source flag was
// given. With watch enabled it also starts a file watcher on that
// source.
func loadVars(dataFile, schemaFile string, watch bool) (*schema.VarSet, *schema.Watcher, error) {
	var path string
	var load schema.LoadFunc

	switch {
	case dataFile != "" && schemaFile != "":
		return nil, nil, fmt.Errorf("--data and --schema are mutually exclusive")
	case dataFile != "":
		path = dataFile
		load = loadCSV
	case schemaFile != "":
		path = schemaFile
		load = loadSchemaFile
	default:
		// No schema source: run the structural checks only.
		return nil, nil, nil
	}

	if watch {
		return schema.Watch(path, load)
	}
	vs, err := load(path)
	if err != nil {
		return nil, nil, err
	}
	return vs, nil, nil
}

func loadCSV(path string) (*schema.VarSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return schema.FromCSVHeader(f)
}

func loadSchemaFile(path string) (*schema.VarSet, error) {
	if isJSONPath(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening schema: %w", err)
		}
		defer f.Close()
		return schema.LoadJSON(f)
	}
	return schema.LoadTOML(path)
}

func isJSONPath(path string) bool {
	return strings.HasSuffix(path, ".json")
}

// runOnce validates the formula and reports; it returns whether any
// diagnostics were found so main can pick the exit code.
func runOnce(out io.Writer, input string, vars *schema.VarSet, printFix bool) bool {
	d := formula.Parse(input, vars)

	if printFix {
		fmt.Fprintln(out, d.AcceptFix())
		return d.HasErrors
	}

	report(out, d)
	return d.HasErrors
}

// runWatch revalidates the formula each time the schema source changes,
// until interrupted.
func runWatch(out, errOut io.Writer, input string, vars *schema.VarSet, watcher *schema.Watcher) error {
	report(out, formula.Parse(input, vars))
	for {
		select {
		case vs, ok := <-watcher.Updates():
			if !ok {
				return nil
			}
			fmt.Fprintln(out, "--- schema changed ---")
			report(out, formula.Parse(input, vs))
		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "Warning: reload failed: %v\n", err)
		}
	}
}

func report(out io.Writer, d formula.Diagnostic) {
	if !d.HasErrors {
		fmt.Fprintf(out, "ok: %s\n", d.Summary())
		return
	}
	for _, kind := range []formula.ErrorKind{formula.ErrSyntax, formula.ErrInvalidElement, formula.ErrUnknownVar} {
		for _, msg := range d.Messages(kind) {
			fmt.Fprintf(out, "%s: %s\n", kind, msg)
		}
	}
	for _, name := range d.UnknownVars {
		if s, ok := d.Suggestions[name]; ok {
			fmt.Fprintf(out, "  hint: did you mean %q instead of %q?\n", s, name)
		}
	}
	if d.FixedEquation != "" && d.FixedEquation != d.Input {
		fmt.Fprintf(out, "suggested fix: %s\n", d.FixedEquation)
	}
}
