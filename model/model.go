package model

import (
	"strconv"
	"strings"
)

// StepType classifies a step for shape and edge semantics. Values mirror the
// StepType column, lower-cased.
type StepType string

const (
	StepProcess    StepType = "process"
	StepDecision   StepType = "decision"
	StepManual     StepType = "manual"
	StepPredefined StepType = "predefined"
	StepPause      StepType = "pause"
	StepInput      StepType = "input"
	StepOutput     StepType = "output"
	StepForm       StepType = "form"
	StepEnd        StepType = "end"
)

// ParseStepType matches a raw cell against the step-type enum,
// case-insensitively. Unrecognized values fall back to StepProcess; ok
// reports whether the raw value matched.
func ParseStepType(raw string) (t StepType, ok bool) {
	switch StepType(strings.ToLower(strings.TrimSpace(raw))) {
	case StepProcess:
		return StepProcess, true
	case StepDecision:
		return StepDecision, true
	case StepManual:
		return StepManual, true
	case StepPredefined:
		return StepPredefined, true
	case StepPause:
		return StepPause, true
	case StepInput:
		return StepInput, true
	case StepOutput:
		return StepOutput, true
	case StepForm:
		return StepForm, true
	case StepEnd:
		return StepEnd, true
	default:
		return StepProcess, false
	}
}

// RiskLevel is the ProcessRisk enum.
type RiskLevel string

const (
	RiskNone   RiskLevel = ""
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ParseRisk matches a raw cell against the risk enum, case-insensitively.
// Anything unrecognized reads as RiskNone.
func ParseRisk(raw string) RiskLevel {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(raw))) {
	case RiskLow:
		return RiskLow
	case RiskMedium:
		return RiskMedium
	case RiskHigh:
		return RiskHigh
	default:
		return RiskNone
	}
}

// Truthy reports whether a boolean-like cell is affirmative: yes/y/true/1,
// case-insensitive.
func Truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "1":
		return true
	default:
		return false
	}
}

// Step is one normalized process step. Steps are constructed once from a
// validated table row and never mutated afterwards.
type Step struct {
	ID       string
	Order    float64
	RowIndex int
	Label    string
	Type     StepType
	// RawType keeps the original cell for display and fallback reporting.
	RawType string
	// TypeFallback is set when RawType did not match the enum and the step
	// was defaulted to StepProcess.
	TypeFallback bool

	Lane                string
	SystemUsed          string
	SLA                 string
	AutomationPotential bool
	ProcessRisk         RiskLevel

	Next    string
	YesNext string
	NoNext  string

	ControlDescription string
	RelatedDocuments   []string
	Notes              string
}

// IsDecision reports whether the step branches.
func (s *Step) IsDecision() bool { return s.Type == StepDecision }

// IsEnd reports whether the step is a terminal end marker.
func (s *Step) IsEnd() bool { return s.Type == StepEnd }

// parseOrder reads the StepOrder cell as a numeric ordinal. Unparsable
// cells fall back to the row index so the step keeps its file position.
func parseOrder(raw string, row int) float64 {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return float64(row)
}

// splitDocuments splits a delimiter-separated RelatedDocuments cell,
// trimming entries and dropping empties.
func splitDocuments(raw, delim string) []string {
	if raw == "" {
		return nil
	}
	var docs []string
	for _, d := range strings.Split(raw, delim) {
		if d = strings.TrimSpace(d); d != "" {
			docs = append(docs, d)
		}
	}
	return docs
}
