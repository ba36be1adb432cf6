package graph

import (
	"fmt"
	"strings"
)

// MermaidRenderer outputs Graphs in Mermaid flowchart syntax. Mermaid has
// no counterpart for rank groups or invisible ordering edges, so those are
// skipped; lane clusters become subgraphs.
type MermaidRenderer struct{}

// Render renders the graph using Mermaid syntax.
func (r *MermaidRenderer) Render(g *Graph) (string, error) {
	if len(g.Nodes) == 0 {
		return "", nil
	}
	var sb strings.Builder
	if g.Orientation == "TB" {
		sb.WriteString("graph TD\n")
	} else {
		sb.WriteString("graph LR\n")
	}
	byID := make(map[string]*Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}
	for i, c := range g.Clusters {
		fmt.Fprintf(&sb, "subgraph lane%d[%s]\n", i, mermaidText(c.Label))
		for _, id := range c.NodeIDs {
			if n, ok := byID[id]; ok {
				fmt.Fprintf(&sb, "%s[%s]\n", n.ID, mermaidText(n.Label))
			}
		}
		sb.WriteString("end\n")
	}
	for _, n := range g.Nodes {
		if n.Lane == "" {
			fmt.Fprintf(&sb, "%s(%s)\n", n.ID, mermaidText(n.Label))
		}
	}
	for _, e := range g.Edges {
		switch e.Kind {
		case EdgeInvisible:
			continue
		case EdgeTrigger, EdgeFinalOutput:
			fmt.Fprintf(&sb, "%s -.-> %s\n", e.From, e.To)
		default:
			if label := e.Attrs["label"]; label != "" {
				fmt.Fprintf(&sb, "%s -->|%s| %s\n", e.From, label, e.To)
			} else {
				fmt.Fprintf(&sb, "%s --> %s\n", e.From, e.To)
			}
		}
	}
	return sb.String(), nil
}

func mermaidText(s string) string {
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "\n", "<br/>")
	return `"` + s + `"`
}
