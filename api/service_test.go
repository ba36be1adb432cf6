package api

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awantoch/procmap/config"
	"github.com/awantoch/procmap/loader"
	"github.com/awantoch/procmap/table"
)

func newTestService(t *testing.T, cfg *config.Config) *Service {
	t.Helper()
	svc, err := NewService(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestBuild_SamplePipeline(t *testing.T) {
	svc := newTestService(t, nil)
	res, err := svc.Build(context.Background(), BuildRequest{Table: loader.Sample()})
	require.NoError(t, err)
	assert.Equal(t, "Employee Onboarding", res.Process.Name)
	assert.Equal(t, 8, res.Summary.Steps)
	assert.Equal(t, 3, res.Summary.Lanes)
	assert.True(t, strings.HasPrefix(res.Output, "digraph"), "default format should be DOT")
	assert.NotEmpty(t, res.InputHash)
	assert.NotEmpty(t, res.BuildID.String())
}

func TestBuild_SchemaErrorIsFatal(t *testing.T) {
	svc := newTestService(t, nil)
	tb := table.New([]string{"ProcessName"}, [][]string{{"P"}})
	res, err := svc.Build(context.Background(), BuildRequest{Table: tb})
	if err == nil {
		t.Fatalf("expected a schema error")
	}
	var se *table.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *table.SchemaError, got %T: %v", err, err)
	}
	if res != nil {
		t.Errorf("schema failure must not produce a result")
	}
}

func TestBuild_UnknownProcess(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.Build(context.Background(), BuildRequest{Table: loader.Sample(), Process: "Nope"})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected a not-found error, got %v", err)
	}
}

func TestBuild_MermaidFormat(t *testing.T) {
	svc := newTestService(t, nil)
	res, err := svc.Build(context.Background(), BuildRequest{Table: loader.Sample(), Format: FormatMermaid})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !strings.HasPrefix(res.Output, "graph ") {
		t.Errorf("expected mermaid output, got %q", strings.SplitN(res.Output, "\n", 2)[0])
	}
	if _, err := svc.Build(context.Background(), BuildRequest{Table: loader.Sample(), Format: "svg"}); err == nil {
		t.Errorf("expected an error for an unsupported format")
	}
}

func TestBuild_PersistsHistory(t *testing.T) {
	svc := newTestService(t, &config.Config{
		Storage: config.StorageConfig{Driver: "memory"},
	})
	res, err := svc.Build(context.Background(), BuildRequest{Table: loader.Sample()})
	require.NoError(t, err)
	saved, err := svc.Storage().GetBuild(context.Background(), res.BuildID)
	require.NoError(t, err, "build not persisted")
	assert.Equal(t, res.Output, saved.DOT)
	assert.Equal(t, res.InputHash, saved.InputHash)
	assert.Equal(t, len(res.Graph.Nodes), saved.NodeCount)
	assert.Equal(t, len(res.Graph.Edges), saved.EdgeCount)
}

func TestBuild_DeterministicHashAndOutput(t *testing.T) {
	svc := newTestService(t, nil)
	a, err := svc.Build(context.Background(), BuildRequest{Table: loader.Sample()})
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Build(context.Background(), BuildRequest{Table: loader.Sample()})
	if err != nil {
		t.Fatal(err)
	}
	if a.Output != b.Output {
		t.Errorf("identical input produced different output")
	}
	if a.InputHash != b.InputHash {
		t.Errorf("identical input produced different hashes")
	}
	if a.BuildID == b.BuildID {
		t.Errorf("each build should mint a fresh id")
	}
}

func TestFilterProcess(t *testing.T) {
	tb := table.New([]string{"ProcessName", "StepID"}, [][]string{
		{"A", "S1"}, {"B", "S2"}, {"A", "S3"},
	})
	filtered := FilterProcess(tb, "A")
	if filtered.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", filtered.Len())
	}
	if filtered.Cell(1, "StepID") != "S3" {
		t.Errorf("row order lost: %q", filtered.Cell(1, "StepID"))
	}
}

func TestNewService_BadLabelTemplate(t *testing.T) {
	_, err := NewService(context.Background(), &config.Config{
		Render: config.RenderConfig{LabelTemplate: "{{ broken"},
	})
	if err == nil {
		t.Errorf("expected an error for a bad label template")
	}
}
