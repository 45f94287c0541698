package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level events to
// a logger. Failed operations are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Register installs h for every hook category.
func (h *LogHooks) Register() {
	SetSolverHooks(h)
	SetCacheHooks(h)
	SetStoreHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnSolveStart(_ context.Context, algorithm string, nodes, links int) {
	h.logger.Debug("solve started", "algorithm", algorithm, "nodes", nodes, "links", links)
}

func (h *LogHooks) OnSolveComplete(_ context.Context, algorithm, outcome string, iterations int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("solve failed", "algorithm", algorithm, "iterations", iterations, "took", d, "err", err)
		return
	}
	h.logger.Debug("solve finished", "algorithm", algorithm, "outcome", outcome, "iterations", iterations, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnStoreOp(_ context.Context, backend, op, name string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("store", "backend", backend, "op", op, "name", name, "took", d, "err", err)
		return
	}
	h.logger.Debug("store", "backend", backend, "op", op, "name", name, "took", d)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "took", d)
}

var (
	_ SolverHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ StoreHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
