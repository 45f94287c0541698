// Package server exposes the solver and the graph store over HTTP.
//
// # Routes
//
//	GET    /healthz                    liveness probe
//	GET    /v1/version                 build information
//	POST   /v1/solve                   solve the snapshot in the body
//	POST   /v1/render                  render the snapshot in the body
//	GET    /v1/graphs                  list stored graphs
//	GET    /v1/graphs/{name}           fetch a snapshot
//	PUT    /v1/graphs/{name}           store the snapshot in the body
//	DELETE /v1/graphs/{name}           remove a graph
//	POST   /v1/graphs/{name}/solve     solve a stored graph
//	GET    /v1/graphs/{name}/render    render a stored graph
//
// Solve routes take the query parameters algorithm, early_exit,
// max_iterations and refresh. Render routes additionally take format, path
// and distances.
//
// # Errors
//
// Failures are written as {"code": "...", "error": "..."} with a status
// derived from the code; see [StatusFor].
//
// # Instrumentation
//
// Every request gets an X-Request-ID (a UUID unless the client sent one) and
// is reported to [observability.HTTP].
package server
