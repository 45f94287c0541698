package cli

import (
	"context"
	"io"

	"github.com/matzehuels/pathfinder/pkg/client"
	"github.com/matzehuels/pathfinder/pkg/pipeline"
)

// solveRemote sends the graph to the server at f.server. With --server,
// --name refers to a graph in the server's store, not the local one.
func (c *CLI) solveRemote(ctx context.Context, w io.Writer, in graphInput, f solveFlags, args []string) (*pipeline.Result, error) {
	cl := client.New(f.server)
	opts := c.solveOptions(f)
	if in.name != "" && len(args) == 0 {
		return cl.SolveStored(ctx, in.name, opts)
	}
	g, err := c.load(ctx, w, in, args)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("solving remotely", "server", f.server)
	return cl.Solve(ctx, g.Snapshot(), opts)
}

func (c *CLI) renderRemote(ctx context.Context, w io.Writer, in graphInput, opts pipeline.RenderOptions, server string, args []string) (*pipeline.Artifact, error) {
	cl := client.New(server)
	if in.name != "" && len(args) == 0 {
		return cl.RenderStored(ctx, in.name, opts)
	}
	g, err := c.load(ctx, w, in, args)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("rendering remotely", "server", server)
	return cl.Render(ctx, g.Snapshot(), opts)
}
