// Package graph builds an explicit intermediate graph value (nodes, edges,
// lane clusters, rank groups) from a process's steps, and renders it into a
// textual graph description.
package graph

import "fmt"

// Node is a vertex in the graph.
type Node struct {
	ID    string
	Label string
	// Lane is empty for synthetic annotation nodes.
	Lane  string
	Attrs map[string]string
}

// EdgeKind orders edges into their serialization categories.
type EdgeKind int

const (
	// EdgeInvisible is a zero-visual-weight ordering-chain edge.
	EdgeInvisible EdgeKind = iota
	// EdgeTrigger connects the trigger annotation to the first step.
	EdgeTrigger
	// EdgeDecision is a Yes/No branch out of a decision step.
	EdgeDecision
	// EdgeLinear is a plain next-step edge.
	EdgeLinear
	// EdgeFinalOutput connects a terminal step to the output annotation.
	EdgeFinalOutput
)

// Edge is a directed connection between two nodes.
type Edge struct {
	From  string
	To    string
	Kind  EdgeKind
	Attrs map[string]string
}

// Cluster is one swimlane: a labeled group of node ids in render order.
type Cluster struct {
	Label   string
	NodeIDs []string
}

// RankGroup pins a set of nodes to the same layout depth. One group exists
// per distinct step-order value.
type RankGroup struct {
	Order   float64
	NodeIDs []string
}

// WarningKind classifies the recoverable anomalies a build can note.
type WarningKind string

const (
	WarnDanglingReference WarningKind = "dangling-reference"
	WarnTypeFallback      WarningKind = "type-fallback"
	WarnLegacyDecision    WarningKind = "legacy-decision"
	WarnDuplicateStepID   WarningKind = "duplicate-step-id"
)

// Warning records one recovered per-row anomaly. The build always proceeds
// past these.
type Warning struct {
	Kind   WarningKind
	StepID string
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: step %q: %s", w.Kind, w.StepID, w.Detail)
}

// Graph is the complete intermediate representation handed to a Renderer.
// It is built once, functionally, and holds all ordering explicitly so
// serialization is deterministic.
type Graph struct {
	Title       string
	Orientation string
	Nodes       []*Node
	Edges       []*Edge
	Clusters    []*Cluster
	RankGroups  []*RankGroup
	Warnings    []Warning
}

// Renderer renders a Graph into a specific output format.
type Renderer interface {
	Render(g *Graph) (string, error)
}
