package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/kangxi-radicals/internal/metrics"
	"github.com/raphaelgruber/kangxi-radicals/internal/models"
	"github.com/raphaelgruber/kangxi-radicals/internal/service"
)

// renderSummary reports one build: selection counts, input quality, stage timings.
func renderSummary(res *service.BuildResult, snap metrics.Snapshot, theme Theme) string {
	var b strings.Builder

	title := fmt.Sprintf("✓ Built %d radicals (%.0f%% resolved)", len(res.Table), resolvedShare(res)*100)
	b.WriteString(theme.completedStyle().Render(title))
	b.WriteString(theme.hintStyle().Render(fmt.Sprintf("  run %s, policy %s", res.RunID, res.Policy)))
	b.WriteString("\n\n")

	rows := [][2]string{
		{"Resolved", fmt.Sprintf("%d", res.Stats.Resolved)},
		{"Unresolved", fmt.Sprintf("%d", res.Stats.Unresolved)},
		{"Contested", fmt.Sprintf("%d", res.Stats.Contested)},
		{"Ambiguous", fmt.Sprintf("%d", res.Stats.Ambiguous)},
	}
	if n := len(res.Stats.UnlinkedTargets); n > 0 {
		rows = append(rows, [2]string{"Unlinked targets", fmt.Sprintf("%d", n)})
	}
	if res.Stats.SupplementExcluded > 0 {
		rows = append(rows, [2]string{"Supplement excluded", fmt.Sprintf("%d", res.Stats.SupplementExcluded)})
	}
	if l := res.Loaded; l != nil {
		rows = append(rows,
			[2]string{"Variant pairs", fmt.Sprintf("%d", l.Equivalence.Pairs)},
			[2]string{"Stroke records", fmt.Sprintf("%d", l.Strokes.Records)},
			[2]string{"Simplified forms", fmt.Sprintf("%d", l.Strokes.Simplified)},
			[2]string{"Malformed lines", fmt.Sprintf("%d", l.Equivalence.Malformed+l.Strokes.Malformed)},
		)
	}
	b.WriteString(renderRows(rows, theme))

	if res.Stats.SupplementSelected > 0 {
		b.WriteString(theme.errorStyle().Render(
			fmt.Sprintf("\n%d intermediaries come from the Radical Supplement block\n", res.Stats.SupplementSelected)))
	}
	if n := res.Stats.Unresolved; n > 0 && n <= 10 {
		var unresolved []string
		for _, e := range res.Table {
			if !e.Resolved() {
				unresolved = append(unresolved, fmt.Sprintf("%d %s", e.Number, e.KangxiChar.Char()))
			}
		}
		b.WriteString(theme.hintStyle().Render("\nUnresolved: " + strings.Join(unresolved, ", ")))
		b.WriteString("\n")
	}

	if len(snap.Stages) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.statusStyle().Render("Stages"))
		b.WriteString("\n")
		for _, st := range snap.Stages {
			fmt.Fprintf(&b, "  %-18s %6dms\n", st.Name, st.TotalTimeMs)
		}
	}

	if res.OutputFile != "" {
		fmt.Fprintf(&b, "\n%s %s\n", theme.labelStyle().Render("Output"), res.OutputFile)
	}
	return b.String()
}

func renderRows(rows [][2]string, theme Theme) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r[0]))
	}
	label := theme.labelStyle().Width(width + 2)

	var b strings.Builder
	for _, r := range rows {
		b.WriteString("  ")
		b.WriteString(label.Render(r[0]))
		b.WriteString(r[1])
		b.WriteString("\n")
	}
	return b.String()
}

// resolvedShare is the fraction of radicals with an intermediary.
func resolvedShare(res *service.BuildResult) float64 {
	return float64(res.Stats.Resolved) / float64(models.RadicalCount)
}
