// Package cmd implements the `cel` CLI, a thin wrapper over pkg/cel
// (SPEC_FULL.md "cmd/cel — a thin CLI ... NOT part of the core").
//
// Grounded on the teacher's cmd/dwscript/cmd package: a package-level
// rootCmd with PersistentFlags, one file per subcommand registering
// itself via init(), and an Execute() entry point called from main.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cel",
	Short: "Common Expression Language evaluator",
	Long: `cel is a command-line evaluator for the Common Expression Language (CEL).

CEL is a small, fast, non-Turing-complete expression language used to embed
portable boolean and computation logic into applications.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
