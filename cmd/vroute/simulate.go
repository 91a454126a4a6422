package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vango-dev/vroute/pkg/router"
)

// view is a stand-in host component that prints its slot changes.
type view struct {
	id   string
	name string
	out  io.Writer
}

func (c *view) ID() string   { return c.id }
func (c *view) Slot() string { return c.name }

func (c *view) SetSlot(name string) {
	fmt.Fprintf(c.out, "    %s: %q -> %q\n", c.id, c.name, name)
	c.name = name
}

func simulateCmd(v *viper.Viper) *cobra.Command {
	var (
		components int
		replace    bool
		remount    bool
	)

	cmd := &cobra.Command{
		Use:   "simulate PATH...",
		Short: "Navigate through paths against simulated components",
		Long: `Mount a number of simulated components, then navigate to each path
in turn, printing every slot assignment, the pending queue and history.

With --remount, components below the first changed one are unmounted and
mounted again after each navigation, the way a host re-renders a
switched subtree.

Examples:
  vroute simulate -c routes.yaml --components 2 /list /list/detail
  vroute simulate -c routes.yaml --components 2 --remount /list/detail /home`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			r, err := buildRouter(cmd, v)
			if err != nil {
				return err
			}
			r.SetBeforeChange(func(from, to router.Route) bool {
				fmt.Fprintf(out, "  %s -> %s\n", from.Path, to.Path)
				return true
			})

			views := make([]*view, components)
			fmt.Fprintf(out, "mount (current %s)\n", r.CurrentRoute().Path)
			for i := range views {
				views[i] = &view{id: fmt.Sprintf("c%d", i), out: out}
				r.RegisterComponent(views[i])
			}

			for _, path := range args {
				fmt.Fprintf(out, "navigate %s\n", path)
				before := slotNames(views)
				if replace {
					err = r.Replace(path)
				} else {
					err = r.Push(path)
				}
				if err != nil {
					return err
				}
				if remount {
					remountBelowChange(r, views, before)
				}
				printState(out, r, views)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&components, "components", "n", 1, "Number of components to mount")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace instead of push")
	cmd.Flags().BoolVar(&remount, "remount", false, "Remount components below a switched view")

	return cmd
}

// remountBelowChange unmounts and remounts every component below the first
// one whose slot changed, so they drain the pending queue.
func remountBelowChange(r *router.Router, views []*view, before []string) {
	start := len(views)
	for i, c := range views {
		if c.name != before[i] {
			start = i + 1
			break
		}
	}
	for _, c := range views[start:] {
		_ = r.RemoveComponent(c)
		c.name = ""
	}
	for _, c := range views[start:] {
		r.RegisterComponent(c)
	}
}

func slotNames(views []*view) []string {
	names := make([]string, len(views))
	for i, c := range views {
		names[i] = c.name
	}
	return names
}

func printState(w io.Writer, r *router.Router, views []*view) {
	names := slotNames(views)
	var hist []string
	for _, route := range r.History() {
		hist = append(hist, route.Path)
	}
	fmt.Fprintf(w, "  slots:   [%s]\n", strings.Join(names, ", "))
	fmt.Fprintf(w, "  pending: [%s]\n", strings.Join(r.Pending(), ", "))
	fmt.Fprintf(w, "  history: [%s]\n", strings.Join(hist, ", "))
}
