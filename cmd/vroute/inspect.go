package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/vango-dev/vroute/internal/config"
	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
)

func treeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the route tree",
		Long: `Print every registered route with its component name.

Routes whose parent declares childType "tab" are marked [tab].

Examples:
  vroute tree -c routes.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildRouter(cmd, v)
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), r.Tree())
			return nil
		},
	}
}

func printTree(w io.Writer, nodes []router.TreeNode) {
	router.Walk(nodes, func(n router.TreeNode, depth int) bool {
		line := strings.Repeat("  ", depth) + n.Key
		if n.Component != "" {
			line += " (" + n.Component + ")"
		}
		if n.Type != "" {
			line += " [" + n.Type + "]"
		}
		fmt.Fprintln(w, line)
		return true
	})
}

func resolveCmd(v *viper.Viper) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve PATH",
		Short: "Resolve a path to its component chain",
		Long: `Resolve a fully-qualified path without navigating.

Prints the component chain, root to leaf, followed by the route fields.

Examples:
  vroute resolve -c routes.yaml /list/detail
  vroute resolve -c routes.yaml /list/detail --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildRouter(cmd, v)
			if err != nil {
				return err
			}
			route, chain, err := r.Resolve(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"route": route, "chain": chain})
			}

			fmt.Fprintf(out, "chain: %s\n", strings.Join(chain, " > "))
			fields := route.Fields()
			keys := make([]string, 0, len(fields))
			for k := range fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "%s: %v\n", k, fields[k])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func checkCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate a route configuration",
		Long: `Validate a route configuration and report every problem found.

Checks segment syntax, duplicate paths, childType values and the
initial path.

Examples:
  vroute check -c routes.yaml
  VROUTE_CONFIG=s3://configs/routes.json vroute check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loc, err := loadConfig(cmd.Context(), v)
			if err != nil {
				return err
			}

			problems := multierr.Errors(config.Validate(cfg))
			if len(problems) == 0 {
				success(cmd.OutOrStdout(), "%s is valid", loc)
				return nil
			}

			for _, p := range problems {
				errors.Fprint(cmd.ErrOrStderr(), p)
			}
			return fmt.Errorf("%s: %d problem(s) found", loc, len(problems))
		},
	}
}

func convertCmd(v *viper.Viper) *cobra.Command {
	var (
		to     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a route configuration to another format",
		Long: `Re-encode a route configuration as JSON, YAML or TOML.

Without --output the result is written to stdout.

Examples:
  vroute convert -c routes.json --to yaml
  vroute convert -c routes.json --output routes.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd.Context(), v)
			if err != nil {
				return err
			}
			if output != "" {
				if err := config.SaveFile(cfg, output); err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "Wrote %s", output)
				return nil
			}
			data, err := config.Encode(cfg, config.Format(to))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&to, "to", "yaml", "Output format (json, yaml, toml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file; format follows the extension")

	return cmd
}
