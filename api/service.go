// Package api exposes the build pipeline as one service used by both the
// CLI and the HTTP surface: validate table, extract process, compile graph,
// serialize, and optionally persist.
package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/awantoch/procmap/blob"
	"github.com/awantoch/procmap/config"
	"github.com/awantoch/procmap/constants"
	"github.com/awantoch/procmap/graph"
	"github.com/awantoch/procmap/graphviz"
	"github.com/awantoch/procmap/model"
	"github.com/awantoch/procmap/storage"
	"github.com/awantoch/procmap/style"
	"github.com/awantoch/procmap/table"
	"github.com/awantoch/procmap/telemetry"
	"github.com/awantoch/procmap/utils"
)

// Output formats for the serialized graph description.
const (
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
)

// Service runs builds. The zero value works: no persistence, no artifact
// store, default options.
type Service struct {
	store    storage.Storage
	blobs    blob.Store
	renderer *graphviz.Renderer
	opts     graph.Options
}

// NewService wires a Service from configuration.
func NewService(ctx context.Context, cfg *config.Config) (*Service, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	svc := &Service{
		renderer: graphviz.New(cfg.Render.DotBinary),
		opts:     graph.Options{Orientation: cfg.Render.Orientation},
	}
	if cfg.Render.LabelTemplate != "" {
		tpl, err := style.NewLabelTemplate(cfg.Render.LabelTemplate)
		if err != nil {
			return nil, utils.Errorf("invalid label template: %w", err)
		}
		svc.opts.LabelTemplate = tpl
	}
	if cfg.Storage.Driver != "" {
		store, err := storage.New(&storage.Config{Driver: cfg.Storage.Driver, DSN: cfg.Storage.DSN})
		if err != nil {
			return nil, err
		}
		svc.store = store
	}
	if cfg.Blob.Driver != "" {
		blobs, err := blob.New(ctx, &blob.Config{
			Driver:    cfg.Blob.Driver,
			Directory: cfg.Blob.Directory,
			Bucket:    cfg.Blob.Bucket,
			Region:    cfg.Blob.Region,
		})
		if err != nil {
			return nil, err
		}
		svc.blobs = blobs
	}
	return svc, nil
}

// Close releases backend handles.
func (s *Service) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// Storage exposes the build-history backend, if configured.
func (s *Service) Storage() storage.Storage { return s.store }

// BuildRequest selects what to compile.
type BuildRequest struct {
	Table *table.Table
	// Process selects the process by name; empty means the first one in
	// the table.
	Process string
	// Format is the serialization format, dot (default) or mermaid.
	Format string
}

// BuildResult is everything a caller can inspect after a build, even when
// later stages (rasterization) fail.
type BuildResult struct {
	BuildID    uuid.UUID
	Validation *table.ValidationResult
	Process    *model.Process
	Summary    model.Summary
	Graph      *graph.Graph
	Output     string
	InputHash  string
}

// Build runs the full pipeline. Schema failures abort before any step is
// constructed; per-row anomalies are recovered and reported on the result.
func (s *Service) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "build")
	defer span.End()
	start := time.Now()

	res, err := s.build(ctx, req)
	process := req.Process
	if res != nil && res.Process != nil {
		process = res.Process.Name
	}
	var kinds []string
	if res != nil && res.Graph != nil {
		for _, w := range res.Graph.Warnings {
			kinds = append(kinds, string(w.Kind))
		}
	}
	telemetry.ObserveBuild(process, time.Since(start), kinds, err)
	return res, err
}

func (s *Service) build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	validation, err := table.Validate(req.Table)
	if err != nil {
		return nil, err
	}

	name := req.Process
	if name == "" {
		processes := model.Processes(req.Table)
		if len(processes) == 0 {
			return nil, utils.Errorf("no processes found in table")
		}
		name = processes[0].Name
	}
	proc := model.Extract(req.Table, name)
	if proc == nil {
		return nil, utils.Errorf("process %q not found in table", name)
	}

	g, err := graph.Build(proc, s.opts)
	if err != nil {
		return nil, err
	}

	var renderer graph.Renderer
	switch req.Format {
	case "", FormatDOT:
		renderer = &graph.DOTRenderer{}
	case FormatMermaid:
		renderer = &graph.MermaidRenderer{}
	default:
		return nil, utils.Errorf("unsupported output format: %s", req.Format)
	}
	out, err := renderer.Render(g)
	if err != nil {
		return nil, err
	}

	res := &BuildResult{
		BuildID:    uuid.New(),
		Validation: validation,
		Process:    proc,
		Summary:    proc.Summarize(),
		Graph:      g,
		Output:     out,
		InputHash:  hashProcessRows(req.Table, name),
	}

	if s.store != nil {
		var warnings []string
		for _, w := range g.Warnings {
			warnings = append(warnings, w.String())
		}
		build := &storage.Build{
			ID:          res.BuildID,
			ProcessName: proc.Name,
			ProcessID:   proc.ID,
			InputHash:   res.InputHash,
			DOT:         out,
			NodeCount:   len(g.Nodes),
			EdgeCount:   len(g.Edges),
			Warnings:    warnings,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.store.SaveBuild(ctx, build); err != nil {
			// History is best-effort; the diagram is still usable.
			utils.Warn("failed to persist build %s: %v", res.BuildID, err)
		}
	}
	return res, nil
}

// Render rasterizes serialized DOT via the external layout engine and, when
// an artifact store is configured, archives the result. Render failures are
// *graphviz.RenderError and leave the DOT artifact intact.
func (s *Service) Render(ctx context.Context, res *BuildResult, format string) ([]byte, string, error) {
	data, err := s.renderer.Render(ctx, res.Output, format)
	if err != nil {
		return nil, "", err
	}
	var url string
	if s.blobs != nil {
		name := strings.ReplaceAll(res.Process.Name, " ", "_") + "." + format
		url, err = s.blobs.Put(ctx, data, "image/"+format, name)
		if err != nil {
			utils.Warn("failed to archive rendered artifact: %v", err)
			url = ""
		}
	}
	return data, url, nil
}

// FilterProcess returns the table narrowed to one process's rows, for
// re-export.
func FilterProcess(t *table.Table, name string) *table.Table {
	return t.Select(func(row int) bool {
		return t.Value(row, constants.ColProcessName) == name
	})
}

func hashProcessRows(t *table.Table, name string) string {
	h := sha256.New()
	filtered := FilterProcess(t, name)
	for _, col := range filtered.Columns() {
		h.Write([]byte(col))
		h.Write([]byte{0})
	}
	for i := 0; i < filtered.Len(); i++ {
		for _, cell := range filtered.Row(i) {
			h.Write([]byte(cell))
			h.Write([]byte{0})
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
