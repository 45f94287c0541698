package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathfinder/pkg/graph"
)

func (c *CLI) validateCommand() *cobra.Command {
	var in graphInput

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a graph for integrity problems",
		Long: `Validate loads a graph and reports its size, its start and end node, and
every link or marker that refers to a missing node. With --policy reject
(the default) any such reference is an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			g, err := c.load(cmd.Context(), out, in, args)
			if err != nil {
				return err
			}

			printSuccess(out, "Graph is valid")
			printKeyValue(out, "nodes", strconv.Itoa(g.NodeCount()))
			printKeyValue(out, "links", strconv.Itoa(g.LinkCount()))
			printKeyValue(out, "start", marker(g.Start()))
			printKeyValue(out, "end", marker(g.End()))
			if !g.HasEndpoints() {
				printWarning(out, "Start and end must both be set before solving")
			}
			return nil
		},
	}
	in.addFlags(cmd)
	return cmd
}

func marker(id int) string {
	if id == graph.NoNode {
		return "unset"
	}
	return fmt.Sprintf("node %d", id)
}
