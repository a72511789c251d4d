// Package tui renders human-readable plan reports for the terminal.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/strata/pkg/layout"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// PlanMarkdown builds the markdown plan report: one summary line, a hub
// table, and per-hub endpoint placements.
func PlanMarkdown(plan *layout.Plan) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Buffer layout\n\n")
	fmt.Fprintf(&sb, "%d hub(s), %d parameter element(s), fingerprint `%s`\n\n",
		len(plan.Hubs), plan.ParamCount, shortFingerprint(plan.Fingerprint))

	sb.WriteString("| Hub | Type | Elements | Context | Sources | Sinks |\n")
	sb.WriteString("|----:|------|---------:|--------:|--------:|------:|\n")
	for i, hub := range plan.Hubs {
		fmt.Fprintf(&sb, "| %d | %s | %d | %d | %d | %d |\n",
			i, hub.BType, hub.Size, hub.ContextSize, len(hub.Sources), len(hub.Sinks))
	}

	for i, hub := range plan.Hubs {
		fmt.Fprintf(&sb, "\n## Hub %d\n\n", i)
		sb.WriteString("| Endpoint | Range |\n|----------|-------|\n")
		for _, p := range hub.Indices() {
			fmt.Fprintf(&sb, "| `%s` | [%d, %d) |\n", p.Path, p.Slice.Start, p.Slice.Stop)
		}
	}
	return sb.String()
}

// Render renders the markdown report for the current terminal. Falls
// back to plain markdown if the renderer cannot initialize.
func Render(plan *layout.Plan) string {
	md := PlanMarkdown(plan)
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Detect light/dark background
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// Headline colors a one-line summary when the terminal supports it.
func Headline(plan *layout.Plan) string {
	text := fmt.Sprintf("planned %d hub(s), %d parameter element(s)", len(plan.Hubs), plan.ParamCount)
	return termenv.NewOutput(os.Stdout).String(text).Bold().String()
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
