// Package client talks to a pathfinder HTTP server.
//
// A [Client] mirrors the server routes: [Client.Solve] and [Client.Render]
// post a snapshot, the graph methods manage the server's store, and
// [Client.SolveStored] and [Client.RenderStored] work on stored graphs.
//
//	c := client.New("http://127.0.0.1:8080")
//	res, err := c.Solve(ctx, g.Snapshot(), pipeline.Options{Algorithm: "astar"})
//
// Failed responses come back as *errors.Error carrying the server's code, so
// errors.Is(err, errors.ErrCodeGraphNotFound) works across the wire. Network
// failures and 5xx responses are retried with backoff.
package client
