package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// TreeOverlay carries the markers drawn around a search tree.
type TreeOverlay struct {
	Start       domain.Point
	Destination domain.Point
}

// GenerateMermaid renders the search tree of res as a Mermaid flowchart.
// Shapes:
// - Start: ((Circle))
// - Destination: (((Double circle)))
// - Explored cell: [Rectangle]
// Every edge links a cell to the cell it was reached from. Cells on the final
// route are styled with the "path" class.
func GenerateMermaid(res *domain.Result, overlay TreeOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	startID := nodeID(overlay.Start)
	fmt.Fprintf(&sb, "    %s((\"start %s\"))\n", startID, overlay.Start)

	for _, e := range res.Tree {
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", nodeID(e.To), e.To)
		fmt.Fprintf(&sb, "    %s --> %s\n", nodeID(e.From), nodeID(e.To))
	}

	if res.Found {
		destID := nodeID(overlay.Destination)
		fmt.Fprintf(&sb, "    %s(((\"destination %s\")))\n", destID, overlay.Destination)
		last := startID
		if len(res.Path) > 0 {
			last = nodeID(res.Path[0])
		}
		fmt.Fprintf(&sb, "    %s ==> %s\n", last, destID)
	}

	sb.WriteString("\n    %% Overlay Styles\n")
	// Black text keeps labels readable on both light and dark themes.
	sb.WriteString("    classDef path fill:#e9d5ff,stroke:#7e22ce,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef marker fill:#bbf7d0,stroke:#15803d,stroke-width:3px,color:#000;\n")
	for _, p := range res.Path {
		fmt.Fprintf(&sb, "    class %s path;\n", nodeID(p))
	}
	fmt.Fprintf(&sb, "    class %s marker;\n", startID)
	if res.Found {
		fmt.Fprintf(&sb, "    class %s marker;\n", nodeID(overlay.Destination))
	}

	return sb.String()
}

func nodeID(p domain.Point) string {
	return fmt.Sprintf("c%d_%d", p.X, p.Y)
}
