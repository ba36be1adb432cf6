package model

import (
	"sort"

	"github.com/awantoch/procmap/constants"
	"github.com/awantoch/procmap/table"
)

// Process is one row group sharing a ProcessName/ProcessID, with its steps
// in build order and the process-level annotations derived from the rows.
type Process struct {
	Name string
	ID   string
	// Trigger and FinalOutput are process-level: the first non-empty value
	// of the respective column across the process's rows.
	Trigger     string
	FinalOutput string
	// Steps are sorted by (Order, original row index).
	Steps []Step
}

// Summary is the per-process metadata rollup shown alongside a diagram.
type Summary struct {
	Steps                int `json:"steps"`
	Lanes                int `json:"lanes"`
	AutomationCandidates int `json:"automation_candidates"`
	HighRiskSteps        int `json:"high_risk_steps"`
	StepsWithSLA         int `json:"steps_with_sla"`
	StepsWithDocuments   int `json:"steps_with_documents"`
}

// Summarize computes the metadata rollup for the process.
func (p *Process) Summarize() Summary {
	s := Summary{Steps: len(p.Steps)}
	lanes := map[string]struct{}{}
	for i := range p.Steps {
		st := &p.Steps[i]
		lanes[st.Lane] = struct{}{}
		if st.AutomationPotential {
			s.AutomationCandidates++
		}
		if st.ProcessRisk == RiskHigh {
			s.HighRiskSteps++
		}
		if st.SLA != "" {
			s.StepsWithSLA++
		}
		if len(st.RelatedDocuments) > 0 {
			s.StepsWithDocuments++
		}
	}
	s.Lanes = len(lanes)
	return s
}

// Names lists the distinct process names in the table, sorted.
func Names(t *table.Table) []string {
	seen := map[string]struct{}{}
	var names []string
	for i := 0; i < t.Len(); i++ {
		name := t.Value(i, constants.ColProcessName)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Processes extracts every process from a validated table, in first-seen
// order. Each process's steps are normalized and sorted by (Order, row
// index); the original row index is the stable tie-break.
func Processes(t *table.Table) []*Process {
	byName := map[string]*Process{}
	var ordered []*Process
	for i := 0; i < t.Len(); i++ {
		name := t.Value(i, constants.ColProcessName)
		if name == "" {
			continue
		}
		p, ok := byName[name]
		if !ok {
			p = &Process{Name: name, ID: t.Value(i, constants.ColProcessID)}
			byName[name] = p
			ordered = append(ordered, p)
		}
		if p.Trigger == "" {
			p.Trigger = t.Value(i, constants.ColTrigger)
		}
		if p.FinalOutput == "" {
			p.FinalOutput = t.Value(i, constants.ColFinalOutput)
		}
		p.Steps = append(p.Steps, stepFromRow(t, i))
	}
	for _, p := range ordered {
		sortSteps(p.Steps)
	}
	return ordered
}

// Extract returns the single named process, or nil when the table has no
// rows for it.
func Extract(t *table.Table, name string) *Process {
	for _, p := range Processes(t) {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func stepFromRow(t *table.Table, row int) Step {
	rawType := t.Value(row, constants.ColStepType)
	typ, matched := ParseStepType(rawType)
	return Step{
		ID:                  t.Value(row, constants.ColStepID),
		Order:               parseOrder(t.Value(row, constants.ColStepOrder), row),
		RowIndex:            row,
		Label:               t.Value(row, constants.ColStepLabel),
		Type:                typ,
		RawType:             rawType,
		TypeFallback:        !matched && rawType != "",
		Lane:                t.Value(row, constants.ColLane),
		SystemUsed:          t.Value(row, constants.ColSystemUsed),
		SLA:                 t.Value(row, constants.ColSLA),
		AutomationPotential: Truthy(t.Value(row, constants.ColAutomationPotential)),
		ProcessRisk:         ParseRisk(t.Value(row, constants.ColProcessRisk)),
		Next:                t.Value(row, constants.ColNextStep),
		YesNext:             t.Value(row, constants.ColYesNext),
		NoNext:              t.Value(row, constants.ColNoNext),
		ControlDescription:  t.Value(row, constants.ColControlDescription),
		RelatedDocuments:    splitDocuments(t.Value(row, constants.ColRelatedDocuments), constants.DocumentDelimiter),
		Notes:               t.Value(row, constants.ColNotes),
	}
}

func sortSteps(steps []Step) {
	sort.SliceStable(steps, func(i, j int) bool {
		if steps[i].Order != steps[j].Order {
			return steps[i].Order < steps[j].Order
		}
		return steps[i].RowIndex < steps[j].RowIndex
	})
}
