package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathfinder/pkg/pipeline"
	"github.com/matzehuels/pathfinder/pkg/render"
)

func (c *CLI) renderCommand() *cobra.Command {
	var (
		in        graphInput
		flags     solveFlags
		output    string
		format    string
		noPath    bool
		distances bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw a graph with its shortest path highlighted",
		Long: `Render draws the graph with every node at its position. The start node is
green, the end node red, and the shortest path between them blue.

Formats: svg, png, pdf (png and pdf need rsvg-convert) and dot.`,
		Example: `  pathfinder render maze.json
  pathfinder render maze.json -o maze.png --distances
  pathfinder render --name maze -f dot -o -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if format == "" && output != "" && output != "-" {
				format = filepath.Ext(output)
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			if output == "" {
				output = defaultOutput(args, in.name, f)
			}

			ropts := pipeline.RenderOptions{
				Format:    f,
				ShowPath:  !noPath,
				Distances: distances,
				Solve:     c.solveOptions(flags),
			}
			art, err := c.render(ctx, out, in, flags, ropts, args)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := out.Write(art.Data)
				return err
			}
			if err := os.WriteFile(output, art.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			if !noPath && len(art.Path) == 0 {
				printWarning(out, "No path to highlight")
			}
			printSuccess(out, "Rendered %s", strings.ToUpper(f))
			printFile(out, output)
			return nil
		},
	}

	in.addFlags(cmd)
	flags.addFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default <input>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "svg, png, pdf or dot (default from --output, else svg)")
	cmd.Flags().BoolVar(&noPath, "no-path", false, "do not solve or highlight the path")
	cmd.Flags().BoolVar(&distances, "distances", false, "label links with their distance")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(render.Formats, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func (c *CLI) render(ctx context.Context, w io.Writer, in graphInput, f solveFlags, opts pipeline.RenderOptions, args []string) (*pipeline.Artifact, error) {
	if f.server != "" {
		return c.renderRemote(ctx, w, in, opts, f.server, args)
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
	return runner.Render(ctx, g, opts)
}

// defaultOutput names the image after the input file, next to it, or after
// the stored graph.
func defaultOutput(args []string, name, format string) string {
	base := name
	if len(args) > 0 {
		base = strings.TrimSuffix(args[0], filepath.Ext(args[0]))
	}
	if base == "" {
		base = "graph"
	}
	return base + "." + format
}
