// Package style derives the visual attribute set for each step: a fixed
// base lookup per step type, plus automation and risk augmentations.
package style

import (
	"github.com/awantoch/procmap/constants"
	"github.com/awantoch/procmap/model"
)

// Attrs is one node's Graphviz attribute set.
type Attrs map[string]string

// base is the nine-entry lookup keyed by step type. Unknown types use the
// process entry.
var base = map[model.StepType]Attrs{
	model.StepProcess:    {"shape": "box", "style": "filled", "fillcolor": "#90EE90", "color": "black", "penwidth": constants.PenWidthBase},
	model.StepDecision:   {"shape": "diamond", "style": "filled", "fillcolor": "#FFD700", "color": "black", "penwidth": constants.PenWidthBase},
	model.StepManual:     {"shape": "box", "style": "filled", "fillcolor": "#BA8FD8", "color": "black", "penwidth": constants.PenWidthBase},
	model.StepPredefined: {"shape": "box3d", "style": "filled", "fillcolor": "#4682B4", "color": "black", "fontcolor": "white", "penwidth": constants.PenWidthBase},
	model.StepPause:      {"shape": "hexagon", "style": "filled,dashed", "fillcolor": "#FF8C00", "color": "black", "penwidth": constants.PenWidthBase},
	model.StepInput:      {"shape": "invtrapezium", "style": "filled", "fillcolor": "#87CEEB", "color": "black", "penwidth": constants.PenWidthBase},
	model.StepOutput:     {"shape": "trapezium", "style": "filled", "fillcolor": "#87CEEB", "color": "black", "penwidth": constants.PenWidthBase},
	model.StepForm:       {"shape": "note", "style": "filled,dashed", "fillcolor": "#D3D3D3", "color": "black", "penwidth": constants.PenWidthBase},
	model.StepEnd:        {"shape": "oval", "style": "filled", "fillcolor": "#FF0000", "color": "black", "fontcolor": "white", "penwidth": constants.PenWidthBase},
}

// ForStep resolves the attribute set for a step. Augmentations apply in
// order: automation potential switches the line style to dashed, then high
// risk recolors the border, so on conflict the risk border wins. The raised
// penwidth is not cumulative; it marks "at least one augmentation present".
func ForStep(step *model.Step) Attrs {
	entry, ok := base[step.Type]
	if !ok {
		entry = base[model.StepProcess]
	}
	attrs := make(Attrs, len(entry)+1)
	for k, v := range entry {
		attrs[k] = v
	}
	if step.AutomationPotential {
		attrs["style"] = "filled,dashed"
		attrs["penwidth"] = constants.PenWidthAugmented
	}
	if step.ProcessRisk == model.RiskHigh {
		attrs["color"] = constants.HighRiskBorderColor
		attrs["penwidth"] = constants.PenWidthAugmented
	}
	return attrs
}
