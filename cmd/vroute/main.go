package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	rterrors "github.com/vango-dev/vroute/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦┬─┐┌─┐┬ ┬┌┬┐┌─┐
  ╚╗╔╝├┬┘│ ││ │ │ ├┤
   ╚╝ ┴└─└─┘└─┘ ┴ └─┘
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runContext(context.Background(), args, stdout, stderr)
}

// runContext is run with a context that long-running commands stop on.
func runContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(viper.New())
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		rterrors.Fprint(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vroute",
		Short: "Inspect and exercise hierarchical route configurations",
		Long: `vroute works with route trees for component hosts.

It loads a route configuration from JSON, YAML, TOML or S3 and can:

  • Print the route tree
  • Resolve a path to its component chain
  • Validate a configuration
  • Simulate navigations against mounted components
  • Serve an HTTP inspector with a live event stream

Settings can also be given as VROUTE_* environment variables,
for example VROUTE_CONFIG=routes.yaml or VROUTE_S3_REGION=eu-west-1.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	bindSettings(rootCmd, v)

	rootCmd.AddCommand(
		treeCmd(v),
		resolveCmd(v),
		checkCmd(v),
		simulateCmd(v),
		serveCmd(v),
		convertCmd(v),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
