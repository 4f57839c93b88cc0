// Package export renders the workflow as a Mermaid diagram and persists
// workflow state snapshots for debugging and resume.
package export

import (
	"fmt"
	"strings"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/orchestrator"
)

// node is one box of the workflow diagram.
type node struct {
	id    string
	label string
}

// edge connects two nodes, optionally labelled.
type edge struct {
	from, to string
	label    string
}

var (
	workflowNodes = []node{
		{"Start", "start"},
		{"SearchPapers", "Search research papers"},
		{"SearchNews", "Search AI news"},
		{"Join", "Join: " + orchestrator.PhaseWaitingBoth.String()},
		{"Header", "Generate header"},
		{"Assemble", "Assemble newsletter"},
		{"Render", "Render HTML + text"},
		{"Deliver", "Store and request approval"},
		{"End", orchestrator.PhaseDone.String()},
	}

	workflowEdges = []edge{
		{"Start", "SearchPapers", ""},
		{"Start", "SearchNews", ""},
		{"SearchPapers", "Join", "done / failed"},
		{"SearchNews", "Join", "done / failed"},
		{"Join", "Header", orchestrator.PhaseReady.String()},
		{"Join", "Join", "overall timeout: mark both failed"},
		{"Header", "Assemble", "header or fallback"},
		{"Assemble", "Render", ""},
		{"Render", "Deliver", ""},
		{"Deliver", "End", ""},
	}
)

// WorkflowMermaid returns a Mermaid flowchart of the newsletter workflow.
func WorkflowMermaid() string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, n := range workflowNodes {
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", n.id, n.label))
	}

	for _, e := range workflowEdges {
		if e.label == "" {
			sb.WriteString(fmt.Sprintf("  %s --> %s\n", e.from, e.to))
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s -->|%s| %s\n", e.from, e.label, e.to))
	}

	return sb.String()
}
