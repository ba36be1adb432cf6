package model

import (
	"testing"

	"github.com/awantoch/procmap/table"
)

var testColumns = []string{
	"ProcessName", "ProcessID", "Lane", "SystemUsed", "StepID", "StepOrder",
	"StepLabel", "StepType", "NextStep", "YesNext", "NoNext",
	"Trigger", "FinalOutput", "SLA", "AutomationPotential", "ProcessRisk",
	"RelatedDocuments",
}

func row(process, id, lane, stepID, order, label, typ, next string, extra map[string]string) []string {
	cells := map[string]string{
		"ProcessName": process, "ProcessID": id, "Lane": lane,
		"StepID": stepID, "StepOrder": order, "StepLabel": label,
		"StepType": typ, "NextStep": next,
	}
	for k, v := range extra {
		cells[k] = v
	}
	out := make([]string, len(testColumns))
	for i, c := range testColumns {
		out[i] = cells[c]
	}
	return out
}

func twoProcessTable() *table.Table {
	return table.New(testColumns, [][]string{
		row("Beta", "P2", "Ops", "B1", "1", "First", "process", "", nil),
		row("Alpha", "P1", "HR", "A2", "2", "Second", "end", "", map[string]string{
			"FinalOutput": "done",
			"ProcessRisk": "high",
			"SLA":         "1 day",
		}),
		row("Alpha", "P1", "HR", "A1", "1", "First", "process", "A2", map[string]string{
			"Trigger":             "kickoff",
			"AutomationPotential": "yes",
			"RelatedDocuments":    "Form A, Form B",
		}),
	})
}

func TestNames_SortedDistinct(t *testing.T) {
	names := Names(twoProcessTable())
	if len(names) != 2 || names[0] != "Alpha" || names[1] != "Beta" {
		t.Errorf("Names = %v", names)
	}
}

func TestProcesses_FirstSeenOrder(t *testing.T) {
	ps := Processes(twoProcessTable())
	if len(ps) != 2 {
		t.Fatalf("expected 2 processes, got %d", len(ps))
	}
	if ps[0].Name != "Beta" || ps[1].Name != "Alpha" {
		t.Errorf("expected first-seen order Beta,Alpha; got %s,%s", ps[0].Name, ps[1].Name)
	}
}

func TestProcesses_StepsSortedByOrder(t *testing.T) {
	p := Extract(twoProcessTable(), "Alpha")
	if p == nil {
		t.Fatalf("Alpha not found")
	}
	if p.ID != "P1" {
		t.Errorf("ID = %q", p.ID)
	}
	// Rows arrive A2 before A1; order values flip them.
	if len(p.Steps) != 2 || p.Steps[0].ID != "A1" || p.Steps[1].ID != "A2" {
		t.Fatalf("steps not sorted by order: %+v", p.Steps)
	}
}

func TestProcesses_AnnotationsFirstNonEmpty(t *testing.T) {
	p := Extract(twoProcessTable(), "Alpha")
	if p.Trigger != "kickoff" {
		t.Errorf("Trigger = %q", p.Trigger)
	}
	if p.FinalOutput != "done" {
		t.Errorf("FinalOutput = %q", p.FinalOutput)
	}
}

func TestStepFromRow_Normalization(t *testing.T) {
	p := Extract(twoProcessTable(), "Alpha")
	a1, a2 := p.Steps[0], p.Steps[1]
	if !a1.AutomationPotential {
		t.Errorf("A1 automation flag not parsed")
	}
	if len(a1.RelatedDocuments) != 2 || a1.RelatedDocuments[0] != "Form A" {
		t.Errorf("A1 documents = %v", a1.RelatedDocuments)
	}
	if a2.ProcessRisk != RiskHigh {
		t.Errorf("A2 risk = %v", a2.ProcessRisk)
	}
	if !a2.IsEnd() {
		t.Errorf("A2 should be an end step")
	}
}

func TestExtract_Missing(t *testing.T) {
	if p := Extract(twoProcessTable(), "Gamma"); p != nil {
		t.Errorf("expected nil for unknown process, got %+v", p)
	}
}

func TestSummarize(t *testing.T) {
	p := Extract(twoProcessTable(), "Alpha")
	s := p.Summarize()
	if s.Steps != 2 || s.Lanes != 1 {
		t.Errorf("Steps/Lanes = %d/%d", s.Steps, s.Lanes)
	}
	if s.AutomationCandidates != 1 || s.HighRiskSteps != 1 {
		t.Errorf("Automation/HighRisk = %d/%d", s.AutomationCandidates, s.HighRiskSteps)
	}
	if s.StepsWithSLA != 1 || s.StepsWithDocuments != 1 {
		t.Errorf("SLA/Documents = %d/%d", s.StepsWithSLA, s.StepsWithDocuments)
	}
}
