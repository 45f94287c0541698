package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathfinder/pkg/pathfind"
	"github.com/matzehuels/pathfinder/pkg/pipeline"
)

// solveFlags are shared by solve and render.
type solveFlags struct {
	algorithm     string
	earlyExit     bool
	maxIterations int
	noCache       bool
	refresh       bool
	server        string
}

func (f *solveFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "dijkstra or astar (default from config)")
	cmd.Flags().BoolVar(&f.earlyExit, "early-exit", false, "A*: legacy scoring, stop as soon as the end node is reached by a link")
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", 0, "abort after this many selected nodes (0 = no limit)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().StringVar(&f.server, "server", "", "send the work to a pathfinder server at this URL")
	_ = cmd.RegisterFlagCompletionFunc("algorithm", cobra.FixedCompletions(pathfind.Algorithms, cobra.ShellCompDirectiveNoFileComp))
}

func (c *CLI) solveOptions(f solveFlags) pipeline.Options {
	alg := f.algorithm
	if alg == "" {
		alg = c.Config.Algorithm
	}
	return pipeline.Options{
		Algorithm:     alg,
		EarlyExit:     f.earlyExit,
		MaxIterations: f.maxIterations,
		Refresh:       f.refresh,
	}
}

func (c *CLI) solveCommand() *cobra.Command {
	var (
		in     graphInput
		flags  solveFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Find the shortest path from the start to the end node",
		Long: `Solve loads a graph file (JSON, TOML or YAML) or a stored graph and finds
the shortest path between its start and end node.`,
		Example: `  pathfinder solve maze.json
  pathfinder solve maze.yaml -a astar
  pathfinder solve --name maze --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			res, err := c.solve(ctx, out, in, flags, args)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printResult(out, res)
			return nil
		},
	}

	in.addFlags(cmd)
	flags.addFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func (c *CLI) solve(ctx context.Context, w io.Writer, in graphInput, f solveFlags, args []string) (*pipeline.Result, error) {
	if f.server != "" {
		return c.solveRemote(ctx, w, in, f, args)
	}
	g, err := c.load(ctx, w, in, args)
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()
	return runner.Solve(ctx, g, c.solveOptions(f))
}
