package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.2.0"

// Exit codes: success, or failure of any class (configuration, git
// invocation, selection integrity).
const (
	ExitSuccess = 0
	ExitFailure = 2
)

var (
	flagOutput  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:     "overlaygen <config.yaml>",
	Short:   "Generate an overlay spec from a git repository",
	Long:    "Overlaygen diffs git refs per a declarative configuration and writes the resulting overlay spec manifest atomically.",
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(args[0], flagOutput)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "Output spec path (default: <repo_dir>/"+defaultOutputHint+")")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging of git invocations")
}

// Run executes the root command and returns the process exit code.
// Every failure class maps to the same non-zero code with a
// descriptive message on stderr.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return ExitFailure
	}
	return ExitSuccess
}
