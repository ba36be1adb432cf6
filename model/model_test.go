package model

import "testing"

func TestParseStepType(t *testing.T) {
	cases := []struct {
		in   string
		want StepType
		ok   bool
	}{
		{"decision", StepDecision, true},
		{"Decision", StepDecision, true},
		{"  END  ", StepEnd, true},
		{"predefined", StepPredefined, true},
		{"foobar", StepProcess, false},
		{"", StepProcess, false},
	}
	for _, c := range cases {
		got, ok := ParseStepType(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseStepType(%q) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseRisk(t *testing.T) {
	cases := map[string]RiskLevel{
		"High":     RiskHigh,
		"LOW":      RiskLow,
		" medium ": RiskMedium,
		"severe":   RiskNone,
		"":         RiskNone,
	}
	for in, want := range cases {
		if got := ParseRisk(in); got != want {
			t.Errorf("ParseRisk(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTruthy(t *testing.T) {
	for _, in := range []string{"yes", "Yes", "Y", "true", "TRUE", "1", " y "} {
		if !Truthy(in) {
			t.Errorf("Truthy(%q) = false, want true", in)
		}
	}
	for _, in := range []string{"no", "n", "false", "0", "", "maybe", "2"} {
		if Truthy(in) {
			t.Errorf("Truthy(%q) = true, want false", in)
		}
	}
}

func TestParseOrder(t *testing.T) {
	if got := parseOrder("2.5", 7); got != 2.5 {
		t.Errorf("parseOrder(2.5) = %v", got)
	}
	if got := parseOrder("3", 7); got != 3 {
		t.Errorf("parseOrder(3) = %v", got)
	}
	if got := parseOrder("soon", 7); got != 7 {
		t.Errorf("unparsable order should fall back to row index, got %v", got)
	}
	if got := parseOrder("", 4); got != 4 {
		t.Errorf("empty order should fall back to row index, got %v", got)
	}
}

func TestSplitDocuments(t *testing.T) {
	got := splitDocuments(" Offer Letter , I-9 Form ,, ", ",")
	if len(got) != 2 || got[0] != "Offer Letter" || got[1] != "I-9 Form" {
		t.Errorf("splitDocuments = %v", got)
	}
	if splitDocuments("", ",") != nil {
		t.Errorf("empty cell should yield nil")
	}
}

func TestSortSteps_StableTieBreak(t *testing.T) {
	steps := []Step{
		{ID: "c", Order: 2, RowIndex: 2},
		{ID: "a", Order: 1, RowIndex: 0},
		{ID: "b", Order: 1, RowIndex: 1},
	}
	sortSteps(steps)
	if steps[0].ID != "a" || steps[1].ID != "b" || steps[2].ID != "c" {
		t.Errorf("unexpected order: %s %s %s", steps[0].ID, steps[1].ID, steps[2].ID)
	}
}
