package graph

import (
	"fmt"

	"github.com/awantoch/procmap/constants"
	"github.com/awantoch/procmap/model"
	"github.com/awantoch/procmap/style"
	"github.com/awantoch/procmap/utils"
)

// Options configure a build.
type Options struct {
	// Orientation is the layout direction, "LR" or "TB".
	Orientation string
	// LabelTemplate overrides the default node-label composition.
	LabelTemplate *style.LabelTemplate
}

// Build compiles one process into a Graph. The process is not mutated;
// identical input yields an identical Graph. Per-row anomalies (dangling
// references, type fallbacks, legacy decision conventions) are recovered
// and recorded as warnings, never fatal.
func Build(p *model.Process, opts Options) (*Graph, error) {
	orientation := opts.Orientation
	if orientation == "" {
		orientation = constants.DefaultOrientation
	}
	g := &Graph{Title: p.Name, Orientation: orientation}
	if len(p.Steps) == 0 {
		return g, nil
	}

	b := &builder{g: g, p: p, opts: opts}
	b.indexSteps()
	if err := b.addStepNodes(); err != nil {
		return nil, err
	}
	b.partitionLanes()
	b.groupRanks()
	b.chainOrder()
	b.injectTrigger()
	b.resolveDecisionEdges()
	b.resolveLinearEdges()
	b.injectFinalOutput()
	return g, nil
}

type builder struct {
	g    *Graph
	p    *model.Process
	opts Options

	// byID resolves string step references; first occurrence wins.
	byID map[string]*model.Step
	// terminals are the steps that connect to the final-output annotation,
	// in sorted-step order.
	terminals []*model.Step
	// hasLinear marks steps that emitted a linear edge.
	hasLinear map[string]bool
}

func (b *builder) warn(kind WarningKind, stepID, format string, args ...any) {
	detail := fmt.Sprintf(format, args...)
	b.g.Warnings = append(b.g.Warnings, Warning{Kind: kind, StepID: stepID, Detail: detail})
	utils.Warn("%s: step %q: %s", kind, stepID, detail)
}

// indexSteps builds the id lookup once; all references resolve through it.
func (b *builder) indexSteps() {
	b.byID = make(map[string]*model.Step, len(b.p.Steps))
	b.hasLinear = make(map[string]bool)
	for i := range b.p.Steps {
		s := &b.p.Steps[i]
		if _, dup := b.byID[s.ID]; dup {
			b.warn(WarnDuplicateStepID, s.ID, "row %d repeats an earlier step id, first occurrence kept", s.RowIndex)
			continue
		}
		b.byID[s.ID] = s
	}
}

func (b *builder) addStepNodes() error {
	for i := range b.p.Steps {
		s := &b.p.Steps[i]
		if s.TypeFallback {
			b.warn(WarnTypeFallback, s.ID, "unrecognized step type %q, using %q", s.RawType, model.StepProcess)
		}
		label := style.Label(s)
		if b.opts.LabelTemplate != nil {
			rendered, err := b.opts.LabelTemplate.Render(s)
			if err != nil {
				return utils.Errorf("label template failed for step %q: %w", s.ID, err)
			}
			label = rendered
		}
		b.g.Nodes = append(b.g.Nodes, &Node{
			ID:    s.ID,
			Label: label,
			Lane:  s.Lane,
			Attrs: style.ForStep(s),
		})
	}
	return nil
}

// partitionLanes groups steps by lane in the order lanes first appear in
// the sorted step sequence.
func (b *builder) partitionLanes() {
	byLane := map[string]*Cluster{}
	for i := range b.p.Steps {
		s := &b.p.Steps[i]
		c, ok := byLane[s.Lane]
		if !ok {
			c = &Cluster{Label: s.Lane}
			byLane[s.Lane] = c
			b.g.Clusters = append(b.g.Clusters, c)
		}
		c.NodeIDs = append(c.NodeIDs, s.ID)
	}
}

// groupRanks places all steps sharing an order value into one
// rank-equivalence group, pinning their depth regardless of lane.
// Annotation nodes never join a group.
func (b *builder) groupRanks() {
	byOrder := map[float64]*RankGroup{}
	for i := range b.p.Steps {
		s := &b.p.Steps[i]
		rg, ok := byOrder[s.Order]
		if !ok {
			rg = &RankGroup{Order: s.Order}
			byOrder[s.Order] = rg
			b.g.RankGroups = append(b.g.RankGroups, rg)
		}
		rg.NodeIDs = append(rg.NodeIDs, s.ID)
	}
}

// chainOrder threads the invisible ordering chain through every consecutive
// pair of sorted steps. The edges never render but carry a high layout
// weight, biasing placement toward step order even across clusters.
func (b *builder) chainOrder() {
	for i := 1; i < len(b.p.Steps); i++ {
		b.g.Edges = append(b.g.Edges, &Edge{
			From: b.p.Steps[i-1].ID,
			To:   b.p.Steps[i].ID,
			Kind: EdgeInvisible,
			Attrs: map[string]string{
				"style":     "invis",
				"arrowhead": "none",
				"weight":    constants.InvisibleChainWeight,
			},
		})
	}
}

func (b *builder) injectTrigger() {
	if b.p.Trigger == "" {
		return
	}
	b.g.Nodes = append(b.g.Nodes, &Node{
		ID:    constants.TriggerNodeID,
		Label: constants.TriggerPrefix + b.p.Trigger,
		Attrs: annotationAttrs(constants.TriggerEdgeColor),
	})
	b.g.Edges = append(b.g.Edges, &Edge{
		From:  constants.TriggerNodeID,
		To:    b.p.Steps[0].ID,
		Kind:  EdgeTrigger,
		Attrs: map[string]string{"style": "dotted", "color": constants.TriggerEdgeColor},
	})
}

// resolve returns the referenced step, or nil after recording a dangling
// reference warning.
func (b *builder) resolve(from *model.Step, field, target string) *model.Step {
	t, ok := b.byID[target]
	if !ok {
		b.warn(WarnDanglingReference, from.ID, "%s %q does not match any step id, edge dropped", field, target)
		return nil
	}
	return t
}

// branchEdge emits one labeled decision edge, classified cross-lane when
// the endpoints' lanes differ. Decision edges never constrain rank
// placement.
func (b *builder) branchEdge(from *model.Step, field, target, label, color string) {
	t := b.resolve(from, field, target)
	if t == nil {
		return
	}
	attrs := map[string]string{
		"label":      label,
		"color":      color,
		"fontcolor":  color,
		"penwidth":   constants.EdgePenWidth,
		"arrowhead":  "normal",
		"constraint": "false",
	}
	if t.Lane != from.Lane {
		attrs["style"] = "dashed"
	}
	b.g.Edges = append(b.g.Edges, &Edge{From: from.ID, To: t.ID, Kind: EdgeDecision, Attrs: attrs})
}

// resolveDecisionEdges emits the Yes/No branches for every decision step,
// disambiguating the legacy column conventions deterministically:
// both branches populated is taken at face value; only YesNext plus a
// populated NextStep reads NextStep as Yes and YesNext as the loop-back No;
// only NextStep emits a lone Yes edge.
func (b *builder) resolveDecisionEdges() {
	for i := range b.p.Steps {
		s := &b.p.Steps[i]
		if !s.IsDecision() {
			continue
		}
		switch {
		case s.YesNext != "" && s.NoNext != "":
			b.branchEdge(s, "YesNext", s.YesNext, constants.YesEdgeLabel, constants.YesEdgeColor)
			b.branchEdge(s, "NoNext", s.NoNext, constants.NoEdgeLabel, constants.NoEdgeColor)
		case s.YesNext != "" && s.Next != "":
			// Legacy data repurposes NextStep as the Yes path and YesNext as
			// a loop-back No path. Best-effort inference, so flag it.
			b.warn(WarnLegacyDecision, s.ID, "only YesNext and NextStep populated; reading NextStep as Yes and YesNext as No")
			b.branchEdge(s, "NextStep", s.Next, constants.YesEdgeLabel, constants.YesEdgeColor)
			b.branchEdge(s, "YesNext", s.YesNext, constants.NoEdgeLabel, constants.NoEdgeColor)
		case s.YesNext != "":
			b.branchEdge(s, "YesNext", s.YesNext, constants.YesEdgeLabel, constants.YesEdgeColor)
		case s.NoNext != "":
			b.branchEdge(s, "NoNext", s.NoNext, constants.NoEdgeLabel, constants.NoEdgeColor)
		case s.Next != "":
			b.branchEdge(s, "NextStep", s.Next, constants.YesEdgeLabel, constants.YesEdgeColor)
		}
	}
}

// resolveLinearEdges emits the plain next-step edges for non-decision
// steps, cross-lane classified, never rank-constraining.
func (b *builder) resolveLinearEdges() {
	for i := range b.p.Steps {
		s := &b.p.Steps[i]
		if s.IsDecision() {
			continue
		}
		if s.Next != "" {
			if t := b.resolve(s, "NextStep", s.Next); t != nil {
				attrs := map[string]string{
					"penwidth":   constants.EdgePenWidth,
					"arrowhead":  "normal",
					"constraint": "false",
				}
				if t.Lane != s.Lane {
					attrs["style"] = "dashed"
				}
				b.g.Edges = append(b.g.Edges, &Edge{From: s.ID, To: t.ID, Kind: EdgeLinear, Attrs: attrs})
				b.hasLinear[s.ID] = true
			}
		}
		if s.IsEnd() || !b.hasLinear[s.ID] {
			b.terminals = append(b.terminals, s)
		}
	}
}

func (b *builder) injectFinalOutput() {
	if b.p.FinalOutput == "" {
		return
	}
	b.g.Nodes = append(b.g.Nodes, &Node{
		ID:    constants.FinalOutputNodeID,
		Label: constants.FinalOutputPrefix + b.p.FinalOutput,
		Attrs: annotationAttrs(constants.FinalOutputColor),
	})
	for _, s := range b.terminals {
		b.g.Edges = append(b.g.Edges, &Edge{
			From:  s.ID,
			To:    constants.FinalOutputNodeID,
			Kind:  EdgeFinalOutput,
			Attrs: map[string]string{"style": "dotted", "color": constants.FinalOutputColor},
		})
	}
}

func annotationAttrs(fontcolor string) map[string]string {
	return map[string]string{
		"shape":     "plaintext",
		"fontsize":  constants.AnnotationFontSize,
		"fontcolor": fontcolor,
		"fontname":  "Arial Bold",
	}
}
