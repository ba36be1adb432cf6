package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/awantoch/procmap/api"
	"github.com/awantoch/procmap/config"
	"github.com/awantoch/procmap/loader"
	"github.com/awantoch/procmap/utils"
)

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	svc, err := api.NewService(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	ts := httptest.NewServer(NewServer(svc).Handler())
	t.Cleanup(func() {
		ts.Close()
		svc.Close()
	})
	return ts
}

func sampleCSV(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := loader.WriteCSV(loader.Sample(), &buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestBuildEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Post(ts.URL+"/build", "text/csv", bytes.NewReader(sampleCSV(t)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		BuildID   string `json:"build_id"`
		Process   string `json:"process"`
		Output    string `json:"output"`
		InputHash string `json:"input_hash"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Process != "Employee Onboarding" {
		t.Errorf("process = %q", body.Process)
	}
	if body.Output == "" || body.BuildID == "" || body.InputHash == "" {
		t.Errorf("incomplete response: %+v", body)
	}
}

func TestBuildEndpoint_JSONBody(t *testing.T) {
	ts := newTestServer(t, nil)
	body := utils.MustMarshalJSON([]map[string]any{{
		"ProcessName": "P", "ProcessID": "1", "Lane": "A", "SystemUsed": "x",
		"StepID": "S1", "StepOrder": 1, "StepLabel": "Only step",
		"StepType": "process", "NextStep": "", "YesNext": "", "NoNext": "",
	}})
	resp, err := http.Post(ts.URL+"/build", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestBuildEndpoint_SchemaError(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Post(ts.URL+"/build", "text/csv", bytes.NewReader([]byte("OneColumn\nvalue\n")))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Error == "" {
		t.Errorf("expected an error message naming the missing columns")
	}
}

func TestBuildEndpoint_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/build")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestProcessesEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Post(ts.URL+"/processes", "text/csv", bytes.NewReader(sampleCSV(t)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Processes []string `json:"processes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Processes) != 1 || body.Processes[0] != "Employee Onboarding" {
		t.Errorf("processes = %v", body.Processes)
	}
}

func TestBuildsEndpoint(t *testing.T) {
	ts := newTestServer(t, &config.Config{Storage: config.StorageConfig{Driver: "memory"}})
	// Seed one build.
	resp, err := http.Post(ts.URL+"/build", "text/csv", bytes.NewReader(sampleCSV(t)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/builds?process=Employee+Onboarding")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var builds []struct {
		ProcessName string `json:"process_name"`
		DOT         string `json:"dot"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&builds); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(builds) != 1 || builds[0].ProcessName != "Employee Onboarding" || builds[0].DOT == "" {
		t.Errorf("builds = %+v", builds)
	}
}

func TestBuildsEndpoint_NoStorage(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/builds")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", resp.StatusCode)
	}
}
