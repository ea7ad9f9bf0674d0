package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/critpath/pkg/circuit"
	"github.com/matzehuels/critpath/pkg/errors"
	"github.com/matzehuels/critpath/pkg/graph"
	"github.com/matzehuels/critpath/pkg/pipeline"
	"github.com/matzehuels/critpath/pkg/store"
)

// analyzeRequest is the body for /v1/analyze and /v1/circuits.
type analyzeRequest struct {
	Netlist      string             `json:"netlist"`
	Name         string             `json:"name,omitempty"`
	Delays       map[string]float64 `json:"delays,omitempty"`
	DefaultDelay *float64           `json:"default_delay,omitempty"`
}

// renderRequest is the body for /v1/render.
type renderRequest struct {
	analyzeRequest
	Format    string `json:"format"`
	Highlight bool   `json:"highlight"`
	Detailed  bool   `json:"detailed"`
}

// delayTable converts request overrides into a delay table. Nil means
// the pipeline should use its defaults. Overrides layer on top of the
// built-in table; the built-in fallback for unlisted types stays in
// place unless default_delay is given explicitly.
func (req analyzeRequest) delayTable() *circuit.DelayTable {
	if len(req.Delays) == 0 && req.DefaultDelay == nil {
		return nil
	}
	table := circuit.DefaultDelays()
	for name, delay := range req.Delays {
		table.Entries[name] = delay
	}
	if req.DefaultDelay != nil {
		table.Default = req.DefaultDelay
	}
	return &table
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Netlist, pipeline.Options{
		Name:   req.Name,
		Delays: req.delayTable(),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc := graph.FromCircuit(result.Circuit, result.Analysis)
	doc.Name = req.Name
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Netlist, pipeline.Options{
		Name:      req.Name,
		Delays:    req.delayTable(),
		Formats:   []string{req.Format},
		Highlight: req.Highlight,
		Detailed:  req.Detailed,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType(req.Format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[req.Format])
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Netlist, pipeline.Options{
		Name:   req.Name,
		Delays: req.delayTable(),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc := graph.FromCircuit(result.Circuit, result.Analysis)
	doc.Name = req.Name
	rec := store.Record{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Document: doc,
	}
	if err := s.archive.Save(r.Context(), rec); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "failed to archive circuit"))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       rec.ID,
		"document": doc,
	})
}

func (s *Server) handleListCircuits(w http.ResponseWriter, r *http.Request) {
	limit := int64(20)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %s", raw))
			return
		}
		limit = parsed
	}

	records, err := s.archive.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"circuits": records})
}

func (s *Server) handleGetCircuit(w http.ResponseWriter, r *http.Request) {
	rec, err := s.archive.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "text/vnd.graphviz"
	}
}

// httpStatus maps an error code to an HTTP status.
func httpStatus(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeMalformedLine, errors.ErrCodeDuplicateNode,
		errors.ErrCodeUndefinedReference, errors.ErrCodeUnknownComponentType,
		errors.ErrCodeGraphCycle, errors.ErrCodeNoPath,
		errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidDelays:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := httpStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    string(code),
			"message": errors.UserMessage(err),
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
