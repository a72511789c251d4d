package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/strata/pkg/layout"
	"github.com/aretw0/strata/pkg/netdef"
)

// GenerateMermaid produces a Mermaid flowchart of the network wiring.
// When a plan is given, endpoints are grouped into subgraphs by hub so
// the buffer partitioning is visible at a glance:
// - Source layers (no inputs): ((Circle))
// - Parameterized layers: [[Subroutine]]
// - Default: [Rectangle]
func GenerateMermaid(reg *netdef.Registry, plan *layout.Plan) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, l := range reg.Layers() {
		safeID := sanitizeMermaidID(l.Name)

		opener, closer := "[", "]"
		switch {
		case len(l.Inputs) == 0:
			opener, closer = "((", "))" // Circle
		case len(l.Params) > 0:
			opener, closer = "[[", "]]" // Subroutine
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, l.Name, closer))

		for _, w := range l.Outgoing {
			safeTo := sanitizeMermaidID(w.DstLayer)
			arrow := fmt.Sprintf("-- \"%s → %s\" -->", w.Output, w.Input)
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
		}
	}

	if plan != nil {
		sb.WriteString("\n    %% Hub membership\n")
		for i, hub := range plan.Hubs {
			sb.WriteString(fmt.Sprintf("    subgraph hub%d [\"hub %d · %s · %d elems\"]\n", i, i, hub.BType, hub.Size))
			for _, src := range hub.Sources {
				sb.WriteString(fmt.Sprintf("        %s\n", sanitizeMermaidID(src)))
			}
			sb.WriteString("    end\n")
		}
	}

	return sb.String()
}

// sanitizeMermaidID strips characters that break Mermaid node ids.
func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", " ", "_", "-", "_", "/", "_")
	return r.Replace(id)
}
