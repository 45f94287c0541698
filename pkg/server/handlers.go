package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pathfinder/pkg/buildinfo"
	errs "github.com/matzehuels/pathfinder/pkg/errors"
	"github.com/matzehuels/pathfinder/pkg/graph"
	pio "github.com/matzehuels/pathfinder/pkg/io"
	"github.com/matzehuels/pathfinder/pkg/pipeline"
	"github.com/matzehuels/pathfinder/pkg/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.solve(w, r, g)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.render(w, r, g)
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if infos == nil {
		infos = []store.Info{}
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handlePutGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := store.CheckName(name); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	snap := g.Snapshot()
	if err := s.store.Put(r.Context(), name, snap); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, store.NewInfo(name, snap, timeNow()))
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSolveStored(w http.ResponseWriter, r *http.Request) {
	g, err := s.loadStored(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.solve(w, r, g)
}

func (s *Server) handleRenderStored(w http.ResponseWriter, r *http.Request) {
	g, err := s.loadStored(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.render(w, r, g)
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request, g *graph.Graph) {
	opts, err := solveOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.runner.Solve(r.Context(), g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, g *graph.Graph) {
	opts, err := renderOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	art, err := s.runner.Render(r.Context(), g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", art.ContentType)
	if art.CacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(art.Data)
}

// readGraph decodes a JSON snapshot body and builds the graph.
func (s *Server) readGraph(w http.ResponseWriter, r *http.Request) (*graph.Graph, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	snap, err := pio.ReadJSON(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "body exceeds %d bytes", s.maxBody)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid graph body")
	}
	return s.build(snap)
}

func (s *Server) loadStored(r *http.Request) (*graph.Graph, error) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		return nil, err
	}
	return s.build(snap)
}

func (s *Server) build(snap graph.Snapshot) (*graph.Graph, error) {
	g, report, err := graph.FromSnapshot(snap, s.policy)
	if err != nil {
		return nil, err
	}
	if n := len(report.DroppedLinks); n > 0 || report.DroppedMarkers > 0 {
		s.logger.Warn("dropped dangling references", "links", n, "markers", report.DroppedMarkers)
	}
	return g, nil
}

func solveOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Algorithm: q.Get("algorithm")}
	var err error
	if opts.EarlyExit, err = boolParam(q.Get("early_exit")); err != nil {
		return opts, errs.Wrap(errs.ErrCodeInvalidInput, err, "early_exit")
	}
	if opts.Refresh, err = boolParam(q.Get("refresh")); err != nil {
		return opts, errs.Wrap(errs.ErrCodeInvalidInput, err, "refresh")
	}
	if v := q.Get("max_iterations"); v != "" {
		if opts.MaxIterations, err = strconv.Atoi(v); err != nil || opts.MaxIterations < 0 {
			return opts, errs.New(errs.ErrCodeInvalidInput, "max_iterations must be a non-negative integer, got %q", v)
		}
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

func renderOptions(r *http.Request) (pipeline.RenderOptions, error) {
	solve, err := solveOptions(r)
	if err != nil {
		return pipeline.RenderOptions{}, err
	}
	q := r.URL.Query()
	opts := pipeline.RenderOptions{Format: q.Get("format"), Solve: solve}
	if opts.ShowPath, err = boolParam(q.Get("path")); err != nil {
		return opts, errs.Wrap(errs.ErrCodeInvalidInput, err, "path")
	}
	if opts.Distances, err = boolParam(q.Get("distances")); err != nil {
		return opts, errs.Wrap(errs.ErrCodeInvalidInput, err, "distances")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
