// Package http serves the build pipeline over HTTP: POST a table, get the
// graph description and process metadata back. The interactive upload form
// of the original web UI is out of scope; this is the API beneath it.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/awantoch/procmap/api"
	"github.com/awantoch/procmap/graph"
	"github.com/awantoch/procmap/graphviz"
	"github.com/awantoch/procmap/loader"
	"github.com/awantoch/procmap/model"
	"github.com/awantoch/procmap/table"
	"github.com/awantoch/procmap/telemetry"
	"github.com/awantoch/procmap/utils"
)

// Server exposes one Service over HTTP.
type Server struct {
	svc *api.Service
}

func NewServer(svc *api.Service) *Server {
	return &Server{svc: svc}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/build", telemetry.WrapHandler("build", http.HandlerFunc(s.buildHandler)))
	mux.Handle("/processes", telemetry.WrapHandler("processes", http.HandlerFunc(s.processesHandler)))
	mux.Handle("/builds", telemetry.WrapHandler("builds", http.HandlerFunc(s.buildsHandler)))
	mux.Handle("/metrics", telemetry.MetricsHandler())
	return mux
}

// ListenAndServe starts the server on addr.
func (s *Server) ListenAndServe(addr string) error {
	utils.Info("procmap serving on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

type buildResponse struct {
	BuildID    string          `json:"build_id"`
	Process    string          `json:"process"`
	ProcessID  string          `json:"process_id"`
	Validation string          `json:"validation"`
	Summary    model.Summary   `json:"summary"`
	Output     string          `json:"output"`
	Warnings   []graph.Warning `json:"warnings,omitempty"`
	InputHash  string          `json:"input_hash"`
	Rendered   string          `json:"rendered_url,omitempty"`
}

// POST /build?process=Name&format=dot&render=svg
// Body: the table, in the format named by Content-Type (text/csv,
// application/json, application/yaml).
func (s *Server) buildHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	t, err := readTable(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.svc.Build(r.Context(), api.BuildRequest{
		Table:   t,
		Process: r.URL.Query().Get("process"),
		Format:  r.URL.Query().Get("format"),
	})
	if err != nil {
		// Schema failures are the caller's data, not our server.
		var schemaErr *table.SchemaError
		if errors.As(err, &schemaErr) {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp := buildResponse{
		BuildID:    res.BuildID.String(),
		Process:    res.Process.Name,
		ProcessID:  res.Process.ID,
		Validation: res.Validation.String(),
		Summary:    res.Summary,
		Output:     res.Output,
		Warnings:   res.Graph.Warnings,
		InputHash:  res.InputHash,
	}
	if format := r.URL.Query().Get("render"); format != "" {
		_, url, err := s.svc.Render(r.Context(), res, format)
		if err != nil {
			// Rendering failed, but the build artifacts are valid; report
			// both so the caller can still use the textual description.
			var renderErr *graphviz.RenderError
			if errors.As(err, &renderErr) {
				resp.Rendered = ""
				w.Header().Set("X-Procmap-Render-Error", renderErr.Error())
			} else {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
		} else {
			resp.Rendered = url
		}
	}
	writeJSON(w, resp)
}

// POST /processes — list the process names a table contains.
func (s *Server) processesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	t, err := readTable(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, map[string]any{"processes": model.Names(t)})
}

// GET /builds?process=Name — build history.
func (s *Server) buildsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	store := s.svc.Storage()
	if store == nil {
		w.WriteHeader(http.StatusNotImplemented)
		return
	}
	builds, err := store.ListBuilds(r.Context(), r.URL.Query().Get("process"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, builds)
}

func readTable(r *http.Request) (*table.Table, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	ct := r.Header.Get("Content-Type")
	switch {
	case strings.Contains(ct, "json"):
		return loader.LoadJSON(body)
	case strings.Contains(ct, "yaml"), strings.Contains(ct, "yml"):
		return loader.LoadYAML(body)
	default:
		return loader.LoadCSV(body)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Error("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`+"\n", err.Error())
}
