package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathfinder/pkg/graph"
	pio "github.com/matzehuels/pathfinder/pkg/io"
	"github.com/matzehuels/pathfinder/pkg/pattern"
)

type generateFlags struct {
	width, height int
	nodeSize      int
	padding       int
	start, end    int
	output        string
}

func (f *generateFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.width, "width", 800, "canvas width")
	cmd.Flags().IntVar(&f.height, "height", 600, "canvas height")
	cmd.Flags().IntVar(&f.nodeSize, "node-size", pattern.DefaultNodeSize, "node diameter")
	cmd.Flags().IntVar(&f.padding, "padding", -1, "gap between nodes (default twice the node size)")
	cmd.Flags().IntVar(&f.start, "start", graph.NoNode, "id of the start node (-1 = first node)")
	cmd.Flags().IntVar(&f.end, "end", graph.NoNode, "id of the end node (-1 = last node)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (.json, .toml, .yaml); stdout as JSON if empty")
}

func (f generateFlags) options() []pattern.Option {
	opts := []pattern.Option{pattern.WithNodeSize(f.nodeSize)}
	if f.padding >= 0 {
		opts = append(opts, pattern.WithPadding(f.padding))
	}
	return opts
}

func (c *CLI) generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Create a graph from a pattern",
	}
	cmd.AddCommand(c.generateGridCommand())
	cmd.AddCommand(c.generateCircleCommand())
	return cmd
}

func (c *CLI) generateGridCommand() *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:     "grid",
		Short:   "Lay out a lattice of nodes linked to their horizontal and vertical neighbours",
		Example: `  pathfinder generate grid --width 400 --height 300 -o grid.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := pattern.Grid(flags.width, flags.height, flags.options()...)
			if err != nil {
				return err
			}
			return c.writeGenerated(cmd, g, flags)
		},
	}
	flags.addFlags(cmd)
	return cmd
}

func (c *CLI) generateCircleCommand() *cobra.Command {
	var (
		flags generateFlags
		rings int
		open  bool
	)
	cmd := &cobra.Command{
		Use:     "circle",
		Short:   "Lay out concentric rings of linked nodes",
		Example: `  pathfinder generate circle --rings 3 -o rings.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := append(flags.options(), pattern.WithRings(rings))
			if open {
				opts = append(opts, pattern.WithOpenRings())
			}
			g, err := pattern.Circular(flags.width, flags.height, opts...)
			if err != nil {
				return err
			}
			return c.writeGenerated(cmd, g, flags)
		},
	}
	flags.addFlags(cmd)
	cmd.Flags().IntVar(&rings, "rings", pattern.DefaultRings, "number of rings")
	cmd.Flags().BoolVar(&open, "open", false, "do not link the last node of a ring back to the first")
	return cmd
}

// writeGenerated sets the markers and writes g.
func (c *CLI) writeGenerated(cmd *cobra.Command, g *graph.Graph, f generateFlags) error {
	ids := g.NodeIDs()
	start, end := f.start, f.end
	if start == graph.NoNode {
		start = ids[0]
	}
	if end == graph.NoNode {
		end = ids[len(ids)-1]
	}
	for _, id := range []int{start, end} {
		if !g.HasNode(id) {
			return fmt.Errorf("node %d: %w", id, graph.ErrUnknownNode)
		}
	}
	g.SetStart(start)
	g.SetEnd(end)

	out := cmd.OutOrStdout()
	if f.output == "" {
		return pio.WriteJSON(g.Snapshot(), out)
	}
	if err := pio.Export(g, f.output); err != nil {
		return err
	}
	printSuccess(out, "Generated %d nodes and %d links", g.NodeCount(), g.LinkCount())
	printFile(out, f.output)
	return nil
}
