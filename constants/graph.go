package constants

// ============================================================================
// GRAPH ATTRIBUTES
// ============================================================================

// Graph-level layout attributes.
const (
	GraphSplines = "polyline"
	GraphNodeSep = "1.0"
	GraphRankSep = "1.5"

	NodeFontName = "Arial"
	NodeFontSize = "11"
	NodeMargin   = "0.3"

	EdgeFontName = "Arial"
	EdgeFontSize = "10"
	EdgePenWidth = "1.5"
)

// Cluster (swimlane) styling.
const (
	ClusterFillColor = "#E8E8E8"
	ClusterFontSize  = "14"
	ClusterFontName  = "Arial Bold"
	ClusterPenWidth  = "2"
)

// Node penwidths: base, and the raised weight applied when an automation or
// risk augmentation is present (not cumulative).
const (
	PenWidthBase      = "2"
	PenWidthAugmented = "3"
)

// HighRiskBorderColor replaces the border color on high-risk steps.
const HighRiskBorderColor = "red"

// Decision branch styling.
const (
	YesEdgeColor = "green"
	NoEdgeColor  = "red"
	YesEdgeLabel = "Yes"
	NoEdgeLabel  = "No"
)

// Annotation (synthetic trigger/final-output) nodes and edges.
const (
	TriggerNodeID      = "_trigger"
	FinalOutputNodeID  = "_finaloutput"
	TriggerPrefix      = "▶ TRIGGER: "
	FinalOutputPrefix  = "✓ OUTPUT: "
	TriggerEdgeColor   = "blue"
	FinalOutputColor   = "green"
	AnnotationFontSize = "12"
)

// SLAMarkerPrefix precedes the SLA line in a node label.
const SLAMarkerPrefix = "⏱ "

// Invisible ordering-chain edges carry a high weight so the layout engine
// honors step order across lane clusters.
const InvisibleChainWeight = "10"
