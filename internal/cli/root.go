// Package cli implements the codegen command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Version is the codegen version, set at build time.
var Version = "dev"

// NewRootCmd builds the codegen command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "codegen",
		Short: "Generate source files from a template",
		Long: `codegen renders a Go template and splits the result into files at
marker lines such as "==> user.go". Globals come from a YAML, TOML or JSON
data file; settings come from codegen.yaml or flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed progress and debug logs")

	root.AddCommand(newGenerateCmd(&verbose))
	root.AddCommand(newSchemaCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "codegen %s\n", Version)
		},
	})

	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		newPrinter(root.ErrOrStderr(), false).Error("%v", err)
		return 1
	}
	return 0
}
