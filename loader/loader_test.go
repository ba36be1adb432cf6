package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/awantoch/procmap/model"
	"github.com/awantoch/procmap/table"
)

func TestLoadCSV(t *testing.T) {
	data := []byte("ProcessName,StepID,StepLabel\nOnboarding,S1,Collect forms\nOnboarding,S2\n")
	tb, err := LoadCSV(data)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if tb.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tb.Len())
	}
	if tb.Value(0, "StepLabel") != "Collect forms" {
		t.Errorf("cell = %q", tb.Value(0, "StepLabel"))
	}
	// Ragged second row reads as empty.
	if tb.Value(1, "StepLabel") != "" {
		t.Errorf("short row cell = %q, want empty", tb.Value(1, "StepLabel"))
	}
}

func TestLoadCSV_Empty(t *testing.T) {
	tb, err := LoadCSV(nil)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if tb.Len() != 0 {
		t.Errorf("expected empty table")
	}
}

func TestLoadJSON(t *testing.T) {
	data := []byte(`[
		{"ProcessName": "P", "StepID": "S1", "StepOrder": 1, "AutomationPotential": true},
		{"ProcessName": "P", "StepID": "S2", "StepOrder": 2.5, "Zebra": "x"}
	]`)
	tb, err := LoadJSON(data)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if tb.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tb.Len())
	}
	if got := tb.Value(0, "StepOrder"); got != "1" {
		t.Errorf("numeric cell = %q, want 1", got)
	}
	if got := tb.Value(1, "StepOrder"); got != "2.5" {
		t.Errorf("fractional cell = %q, want 2.5", got)
	}
	if got := tb.Value(0, "AutomationPotential"); got != "true" {
		t.Errorf("bool cell = %q, want true", got)
	}
	// Contract columns come first, extras sorted at the end.
	cols := tb.Columns()
	if cols[0] != "ProcessName" || cols[len(cols)-1] != "Zebra" {
		t.Errorf("column order = %v", cols)
	}
}

func TestLoadJSON_RejectsNonRecordForm(t *testing.T) {
	for _, data := range []string{
		`{"ProcessName": "P"}`,
		`[{"ProcessName": {"nested": true}}]`,
		`["just a string"]`,
	} {
		if _, err := LoadJSON([]byte(data)); err == nil {
			t.Errorf("expected schema rejection for %s", data)
		}
	}
}

func TestLoadYAML(t *testing.T) {
	data := []byte(`
- ProcessName: P
  StepID: S1
  StepOrder: 1
- ProcessName: P
  StepID: S2
  StepOrder: 2
`)
	tb, err := LoadYAML(data)
	if err != nil {
		t.Fatalf("LoadYAML failed: %v", err)
	}
	if tb.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tb.Len())
	}
	if got := tb.Value(1, "StepOrder"); got != "2" {
		t.Errorf("yaml numeric cell = %q, want 2", got)
	}
}

func TestLoad_DispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.json")
	if err := os.WriteFile(path, []byte(`[{"ProcessName": "P", "StepID": "S1"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	tb, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tb.Value(0, "StepID") != "S1" {
		t.Errorf("cell = %q", tb.Value(0, "StepID"))
	}
	if _, err := Load(filepath.Join(dir, "missing.csv")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestSample_PassesValidationAndBuilds(t *testing.T) {
	tb := Sample()
	if _, err := table.Validate(tb); err != nil {
		t.Fatalf("sample fails validation: %v", err)
	}
	ps := model.Processes(tb)
	if len(ps) != 1 {
		t.Fatalf("expected 1 sample process, got %d", len(ps))
	}
	p := ps[0]
	if p.Name != "Employee Onboarding" {
		t.Errorf("process name = %q", p.Name)
	}
	if len(p.Steps) != 8 {
		t.Errorf("expected 8 steps, got %d", len(p.Steps))
	}
	if p.Trigger == "" || p.FinalOutput == "" {
		t.Errorf("sample should carry trigger and final output")
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(Sample(), &buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	back, err := LoadCSV(buf.Bytes())
	if err != nil {
		t.Fatalf("re-read failed: %v", err)
	}
	if back.Len() != Sample().Len() {
		t.Errorf("row count changed: %d -> %d", Sample().Len(), back.Len())
	}
	if !strings.HasPrefix(buf.String(), "ProcessName,") {
		t.Errorf("header missing: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}
}
