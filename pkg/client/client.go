package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/pathfinder/pkg/cache"
	errs "github.com/matzehuels/pathfinder/pkg/errors"
	"github.com/matzehuels/pathfinder/pkg/graph"
	"github.com/matzehuels/pathfinder/pkg/pipeline"
	"github.com/matzehuels/pathfinder/pkg/server"
	"github.com/matzehuels/pathfinder/pkg/store"
)

// DefaultTimeout bounds a single HTTP round trip.
const DefaultTimeout = 2 * time.Minute

// Client is a pathfinder API client. It is safe for concurrent use.
type Client struct {
	base    string
	http    *http.Client
	headers map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		headers: map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health reports whether the server answers its health check.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil, nil)
}

// Solve posts s and returns the search result.
func (c *Client) Solve(ctx context.Context, s graph.Snapshot, opts pipeline.Options) (*pipeline.Result, error) {
	var res pipeline.Result
	if err := c.do(ctx, http.MethodPost, "/v1/solve", solveQuery(opts), s, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SolveStored solves the graph stored under name.
func (c *Client) SolveStored(ctx context.Context, name string, opts pipeline.Options) (*pipeline.Result, error) {
	var res pipeline.Result
	if err := c.do(ctx, http.MethodPost, graphPath(name, "solve"), solveQuery(opts), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Render posts s and returns the drawing.
func (c *Client) Render(ctx context.Context, s graph.Snapshot, opts pipeline.RenderOptions) (*pipeline.Artifact, error) {
	return c.render(ctx, http.MethodPost, "/v1/render", opts, s)
}

// RenderStored draws the graph stored under name.
func (c *Client) RenderStored(ctx context.Context, name string, opts pipeline.RenderOptions) (*pipeline.Artifact, error) {
	return c.render(ctx, http.MethodGet, graphPath(name, "render"), opts, nil)
}

func (c *Client) render(ctx context.Context, method, path string, opts pipeline.RenderOptions, body any) (*pipeline.Artifact, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errs.FromDomain(err)
	}
	var raw rawBody
	if err := c.do(ctx, method, path, renderQuery(opts), body, &raw); err != nil {
		return nil, err
	}
	return &pipeline.Artifact{
		Format:      opts.Format,
		ContentType: raw.contentType,
		Data:        raw.data,
		CacheHit:    raw.cacheHit,
	}, nil
}

// List returns the server's stored graphs.
func (c *Client) List(ctx context.Context) ([]store.Info, error) {
	var infos []store.Info
	if err := c.do(ctx, http.MethodGet, "/v1/graphs", nil, nil, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// Get returns the snapshot stored under name.
func (c *Client) Get(ctx context.Context, name string) (graph.Snapshot, error) {
	var s graph.Snapshot
	if err := c.do(ctx, http.MethodGet, graphPath(name), nil, nil, &s); err != nil {
		return graph.Snapshot{}, err
	}
	return s, nil
}

// Put stores s under name.
func (c *Client) Put(ctx context.Context, name string, s graph.Snapshot) (store.Info, error) {
	var info store.Info
	if err := c.do(ctx, http.MethodPut, graphPath(name), nil, s, &info); err != nil {
		return store.Info{}, err
	}
	return info, nil
}

// Delete removes the graph stored under name.
func (c *Client) Delete(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, graphPath(name), nil, nil, nil)
}

func graphPath(name string, rest ...string) string {
	return "/v1/graphs/" + url.PathEscape(name) + strings.Join(append([]string{""}, rest...), "/")
}

func solveQuery(opts pipeline.Options) url.Values {
	q := url.Values{}
	if opts.Algorithm != "" {
		q.Set("algorithm", opts.Algorithm)
	}
	if opts.EarlyExit {
		q.Set("early_exit", "true")
	}
	if opts.Refresh {
		q.Set("refresh", "true")
	}
	if opts.MaxIterations > 0 {
		q.Set("max_iterations", strconv.Itoa(opts.MaxIterations))
	}
	return q
}

func renderQuery(opts pipeline.RenderOptions) url.Values {
	q := solveQuery(opts.Solve)
	if opts.Format != "" {
		q.Set("format", opts.Format)
	}
	if opts.ShowPath {
		q.Set("path", "true")
	}
	if opts.Distances {
		q.Set("distances", "true")
	}
	return q
}

// rawBody receives a non-JSON response.
type rawBody struct {
	contentType string
	data        []byte
	cacheHit    bool
}

// errorBody mirrors the server's error response.
type errorBody struct {
	Code  errs.Code `json:"code"`
	Error string    `json:"error"`
}

// do sends one request, retrying transient failures. in is JSON-encoded
// when non-nil; out receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	return cache.RetryWithBackoff(ctx, func() error {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, body)
		if err != nil {
			return err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range c.headers {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return cache.Retryable(fmt.Errorf("%s %s: %w", method, path, err))
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			err := decodeError(resp)
			if resp.StatusCode >= 500 && resp.StatusCode != http.StatusNotImplemented {
				return cache.Retryable(err)
			}
			return err
		}
		return decode(resp, out)
	})
}

func decode(resp *http.Response, out any) error {
	switch v := out.(type) {
	case nil:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case *rawBody:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		*v = rawBody{
			contentType: resp.Header.Get("Content-Type"),
			data:        data,
			cacheHit:    resp.Header.Get("X-Cache") == "hit",
		}
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Code == "" {
		return errs.New(errs.ErrCodeInternal, "server returned %s", resp.Status)
	}
	e := errs.New(body.Code, "%s", body.Error)
	if id := resp.Header.Get(server.RequestIDHeader); id != "" {
		e.Message += " (request " + id + ")"
	}
	return e
}
