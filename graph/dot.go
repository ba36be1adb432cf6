package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/awantoch/procmap/constants"
)

// DOTRenderer outputs Graphs in the Graphviz DOT language. Output is
// byte-identical for identical graphs: clusters render in first-seen order,
// nodes in the order their cluster lists them, edges grouped by category,
// and every attribute set is emitted with sorted keys.
type DOTRenderer struct{}

// Render serializes the graph.
func (r *DOTRenderer) Render(g *Graph) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", quote(g.Title))
	fmt.Fprintf(&sb, "\trankdir=%s;\n", g.Orientation)
	fmt.Fprintf(&sb, "\tsplines=%s;\n", constants.GraphSplines)
	fmt.Fprintf(&sb, "\tnodesep=%s;\n", constants.GraphNodeSep)
	fmt.Fprintf(&sb, "\tranksep=%s;\n", constants.GraphRankSep)
	fmt.Fprintf(&sb, "\tlabel=%s;\n", quote(g.Title))
	sb.WriteString("\tlabelloc=t;\n")
	sb.WriteString("\tlabeljust=l;\n")
	sb.WriteString("\tfontname=\"Arial Bold\";\n")
	sb.WriteString("\tfontsize=16;\n")
	fmt.Fprintf(&sb, "\tnode [fontname=%s, fontsize=%s, margin=%s];\n",
		quote(constants.NodeFontName), constants.NodeFontSize, constants.NodeMargin)
	fmt.Fprintf(&sb, "\tedge [color=black, fontname=%s, fontsize=%s, penwidth=%s];\n",
		quote(constants.EdgeFontName), constants.EdgeFontSize, constants.EdgePenWidth)

	byID := make(map[string]*Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}

	for i, c := range g.Clusters {
		fmt.Fprintf(&sb, "\tsubgraph cluster_%d {\n", i)
		fmt.Fprintf(&sb, "\t\tlabel=%s;\n", quote(c.Label))
		sb.WriteString("\t\tstyle=filled;\n")
		sb.WriteString("\t\tcolor=black;\n")
		fmt.Fprintf(&sb, "\t\tfillcolor=%s;\n", quote(constants.ClusterFillColor))
		fmt.Fprintf(&sb, "\t\tfontname=%s;\n", quote(constants.ClusterFontName))
		fmt.Fprintf(&sb, "\t\tfontsize=%s;\n", constants.ClusterFontSize)
		sb.WriteString("\t\tlabeljust=l;\n")
		fmt.Fprintf(&sb, "\t\tpenwidth=%s;\n", constants.ClusterPenWidth)
		for _, id := range c.NodeIDs {
			if n, ok := byID[id]; ok {
				writeNode(&sb, "\t\t", n)
			}
		}
		sb.WriteString("\t}\n")
	}

	// Annotation nodes live outside every lane cluster.
	for _, n := range g.Nodes {
		if n.Lane == "" {
			writeNode(&sb, "\t", n)
		}
	}

	for _, rg := range g.RankGroups {
		sb.WriteString("\t{ rank=same;")
		for _, id := range rg.NodeIDs {
			sb.WriteString(" " + quote(id) + ";")
		}
		sb.WriteString(" }\n")
	}

	// Edges in fixed category order: ordering chain, trigger, decision,
	// linear, terminal-to-output.
	for _, kind := range []EdgeKind{EdgeInvisible, EdgeTrigger, EdgeDecision, EdgeLinear, EdgeFinalOutput} {
		for _, e := range g.Edges {
			if e.Kind != kind {
				continue
			}
			fmt.Fprintf(&sb, "\t%s -> %s%s;\n", quote(e.From), quote(e.To), attrList(e.Attrs, ""))
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

func writeNode(sb *strings.Builder, indent string, n *Node) {
	fmt.Fprintf(sb, "%s%s%s;\n", indent, quote(n.ID), attrList(n.Attrs, n.Label))
}

// attrList renders an attribute set as ` [k="v", ...]` with sorted keys.
// A non-empty label is merged in under the "label" key.
func attrList(attrs map[string]string, label string) string {
	if len(attrs) == 0 && label == "" {
		return ""
	}
	merged := make(map[string]string, len(attrs)+1)
	for k, v := range attrs {
		merged[k] = v
	}
	if label != "" {
		merged["label"] = label
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, quote(merged[k])))
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

// quote wraps a value in double quotes, escaping quotes, backslashes and
// embedded line breaks for the DOT grammar.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
