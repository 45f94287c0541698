package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathfinder/pkg/graph"
	pio "github.com/matzehuels/pathfinder/pkg/io"
)

// graphInput selects where a command reads its graph: a file argument or a
// stored graph name.
type graphInput struct {
	name   string
	policy string
}

func (in *graphInput) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.name, "name", "", "use a stored graph instead of a file")
	cmd.Flags().StringVar(&in.policy, "policy", "", "dangling reference policy: reject or drop (default from config)")
}

func (c *CLI) policy(flag string) (graph.Policy, error) {
	if flag == "" {
		return c.Config.PolicyValue(), nil
	}
	return graph.ParsePolicy(flag)
}

// load returns the graph named by args or --name.
func (c *CLI) load(ctx context.Context, w io.Writer, in graphInput, args []string) (*graph.Graph, error) {
	policy, err := c.policy(in.policy)
	if err != nil {
		return nil, err
	}
	prog := newProgress(c.Logger)

	var (
		g      *graph.Graph
		report graph.LoadReport
	)
	switch {
	case in.name != "" && len(args) > 0:
		return nil, fmt.Errorf("give either a file or --name, not both")
	case in.name != "":
		st, err := c.openStore(ctx)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		snap, err := st.Get(ctx, in.name)
		if err != nil {
			return nil, err
		}
		if g, report, err = graph.FromSnapshot(snap, policy); err != nil {
			return nil, fmt.Errorf("%s: %w", in.name, err)
		}
	case len(args) == 1:
		if g, report, err = pio.Load(args[0], policy); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("a graph file or --name is required")
	}

	reportDropped(w, report)
	prog.done("graph loaded", "nodes", g.NodeCount(), "links", g.LinkCount())
	return g, nil
}

func reportDropped(w io.Writer, r graph.LoadReport) {
	if len(r.DroppedLinks) > 0 {
		printWarning(w, "Dropped %d link(s) with missing endpoints", len(r.DroppedLinks))
		for _, l := range r.DroppedLinks {
			printDetail(w, "%d -> %d", l.Start, l.End)
		}
	}
	if r.DroppedMarkers > 0 {
		printWarning(w, "Dropped %d start/end marker(s) on missing nodes", r.DroppedMarkers)
	}
}
