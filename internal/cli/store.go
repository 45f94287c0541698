package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pio "github.com/matzehuels/pathfinder/pkg/io"
	"github.com/matzehuels/pathfinder/pkg/store"
)

// storeCommand creates the graph store command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage named graphs in the configured store",
	}

	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storePushCommand())
	cmd.AddCommand(c.storePullCommand())
	cmd.AddCommand(c.storeRemoveCommand())

	return cmd
}

func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored graphs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			infos, err := st.List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(infos) == 0 {
				printInfo(out, "No stored graphs")
				return nil
			}
			printGraphTable(out, infos)
			return nil
		},
	}
}

func (c *CLI) storePushCommand() *cobra.Command {
	var policy string
	cmd := &cobra.Command{
		Use:   "push FILE [NAME]",
		Short: "Store a graph file under a name (default: the file name)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.policy(policy)
			if err != nil {
				return err
			}
			g, report, err := pio.Load(args[0], p)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			reportDropped(out, report)

			name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			if len(args) == 2 {
				name = args[1]
			}
			if err := store.CheckName(name); err != nil {
				return err
			}

			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Put(ctx, name, g.Snapshot()); err != nil {
				return err
			}
			printSuccess(out, "Stored %s (%d nodes, %d links)", name, g.NodeCount(), g.LinkCount())
			return nil
		},
	}
	cmd.Flags().StringVar(&policy, "policy", "", "dangling reference policy: reject or drop (default from config)")
	return cmd
}

func (c *CLI) storePullCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "pull NAME",
		Short: "Write a stored graph to a file or stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			snap, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if output == "" {
				return pio.WriteJSON(snap, out)
			}

			format, err := pio.FormatFromPath(output)
			if err != nil {
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := pio.Write(snap, f, format); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			printSuccess(out, "Pulled %s", args[0])
			printFile(out, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json, .toml, .yaml); stdout as JSON if empty")
	return cmd
}

func (c *CLI) storeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME...",
		Aliases: []string{"remove"},
		Short:   "Delete stored graphs",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			failed := 0
			for _, name := range args {
				if err := st.Delete(ctx, name); err != nil {
					printError(out, "%s: %v", name, err)
					failed++
					continue
				}
				printSuccess(out, "Removed %s", name)
			}
			if failed > 0 {
				return fmt.Errorf("could not remove %d of %d graph(s)", failed, len(args))
			}
			return nil
		},
	}
}
