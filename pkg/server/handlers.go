package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Naivedya-sahu/lamp-v2/pkg/buildinfo"
	lamperrors "github.com/Naivedya-sahu/lamp-v2/pkg/errors"
	"github.com/Naivedya-sahu/lamp-v2/pkg/observability"
	"github.com/Naivedya-sahu/lamp-v2/pkg/pipeline"
	"github.com/Naivedya-sahu/lamp-v2/pkg/store"
)

// maxRequestBytes bounds the POST /api/layout body: the netlist size
// limit plus headroom for the options wrapper.
const maxRequestBytes = 2 << 20

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleHealthz reports liveness and the build version.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleLayout runs the pipeline on an inline netlist and persists the
// run. The response is the stored run document with the layout embedded;
// the SVG artifact is served separately.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(&opts); err != nil {
		s.writeError(w, r, lamperrors.New(lamperrors.ErrCodeInvalidInput, "decode request: %v", err))
		return
	}

	if opts.Netlist == "" {
		s.writeError(w, r, lamperrors.New(lamperrors.ErrCodeInvalidNetlist, "netlist is required"))
		return
	}

	// The API never reads server-side files: inline source only, no
	// symbol overlays from disk.
	opts.NetlistPath = ""
	opts.SymbolsPath = ""
	opts.Logger = s.logger

	// The run document stores the layout JSON and the SVG artifact, so
	// we always render both regardless of what the caller asked for.
	opts.Formats = []string{pipeline.FormatSVG, pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	run := &store.Run{
		ID:          result.RunID,
		CreatedAt:   time.Now().UTC(),
		Source:      opts.Netlist,
		NetlistHash: result.NetlistHash,
		LayoutHash:  result.LayoutHash,
		Topology:    string(result.Layout.Topology),
		Layout:      result.Artifacts[pipeline.FormatJSON],
		SVG:         result.Artifacts[pipeline.FormatSVG],
		Stats: store.RunStats{
			Components:  result.Stats.ComponentCount,
			Nets:        result.Stats.NetCount,
			Wires:       result.Stats.WireCount,
			Diagnostics: result.Stats.DiagnosticCount,
		},
	}
	if err := s.store.Put(r.Context(), run); err != nil {
		s.writeError(w, r, lamperrors.Wrap(lamperrors.ErrCodeStore, err, "persist run %s", run.ID))
		return
	}

	writeJSON(w, http.StatusCreated, run)
}

// handleListRuns lists recent runs, newest first. Layout documents are
// omitted from list entries; fetch a single run for the full document.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, lamperrors.New(lamperrors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, lamperrors.Wrap(lamperrors.ErrCodeStore, err, "list runs"))
		return
	}

	for _, run := range runs {
		run.Layout = nil
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// handleGetRun fetches one run with the layout JSON embedded.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// handleGetRunSVG serves the rendered SVG artifact of a run.
func (s *Server) handleGetRunSVG(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(run.SVG)
}

// lookupRun validates the id path parameter and fetches the run.
// On failure it writes the error response and returns ok=false.
func (s *Server) lookupRun(w http.ResponseWriter, r *http.Request) (*store.Run, bool) {
	id := chi.URLParam(r, "id")
	if err := lamperrors.ValidateRunID(id); err != nil {
		s.writeError(w, r, err)
		return nil, false
	}

	run, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, lamperrors.New(lamperrors.ErrCodeRunNotFound, "run %s not found", id))
		return nil, false
	}
	if err != nil {
		s.writeError(w, r, lamperrors.Wrap(lamperrors.ErrCodeStore, err, "get run %s", id))
		return nil, false
	}
	return run, true
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its HTTP status and writes the JSON error
// body. Unknown errors are reported as internal without leaking detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.Server().OnError(r.Context(), r.Method, r.URL.Path, err)

	code := lamperrors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	msg := lamperrors.UserMessage(err)
	if code == "" {
		code = lamperrors.ErrCodeInternal
		msg = "internal error"
	}

	writeJSON(w, status, errorResponse{Error: errorDetail{
		Code:    string(code),
		Message: msg,
	}})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code lamperrors.Code) int {
	switch code {
	case lamperrors.ErrCodeInvalidInput,
		lamperrors.ErrCodeInvalidNetlist,
		lamperrors.ErrCodeInvalidConfig,
		lamperrors.ErrCodeInvalidFormat,
		lamperrors.ErrCodeInvalidSymbols,
		lamperrors.ErrCodeInvalidRunID:
		return http.StatusBadRequest
	case lamperrors.ErrCodeNotFound,
		lamperrors.ErrCodeRunNotFound,
		lamperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case lamperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
