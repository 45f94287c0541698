package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathfinder/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pathfinding HTTP API",
		Long: `Serve exposes solving, rendering and the graph store over HTTP.

Routes:
  POST   /v1/solve                 solve a posted graph
  POST   /v1/render                render a posted graph
  GET    /v1/graphs                list stored graphs
  GET    /v1/graphs/{name}         fetch a stored graph
  PUT    /v1/graphs/{name}         store a graph
  DELETE /v1/graphs/{name}         delete a stored graph
  POST   /v1/graphs/{name}/solve   solve a stored graph
  GET    /v1/graphs/{name}/render  render a stored graph`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := server.New(runner, st,
				server.WithLogger(c.Logger),
				server.WithPolicy(c.Config.PolicyValue()),
				server.WithMaxBodyBytes(c.Config.Server.MaxBodyBytes),
				server.WithTimeout(c.Config.Server.Timeout.Duration),
			)
			printInfo(cmd.OutOrStdout(), "Listening on http://%s", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	return cmd
}
