package archiver

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/project-archiver/internal/domain/archive"
)

const (
	// ruleWidth is the width of the banner and separator lines.
	ruleWidth = 60

	markFound   = "✅"
	markMissing = "❌"
)

// palette holds the styles bound to one output's color profile.
type palette struct {
	banner  lipgloss.Style
	label   lipgloss.Style
	found   lipgloss.Style
	missing lipgloss.Style
}

func newPalette(w io.Writer) palette {
	renderer := lipgloss.NewRenderer(w)

	return palette{
		banner:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		label:   renderer.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
		found:   renderer.NewStyle().Foreground(lipgloss.Color("#50C878")),
		missing: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	}
}

// renderSummary prints the archive location, size, file count and manifest checklist.
func renderSummary(w io.Writer, summary *archive.Summary) {
	p := newPalette(w)

	var builder strings.Builder

	heavy := strings.Repeat("=", ruleWidth)

	builder.WriteString(p.banner.Render(heavy) + "\n")
	builder.WriteString(p.banner.Render(markFound+" ARCHIVE CREATED SUCCESSFULLY!") + "\n")
	builder.WriteString(p.banner.Render(heavy) + "\n\n")

	fmt.Fprintf(&builder, "%s %s\n", p.label.Render("📁 Location:"), summary.Path)
	fmt.Fprintf(&builder, "%s %.2f MB\n", p.label.Render("📦 Size:"), summary.SizeMiB())
	fmt.Fprintf(&builder, "%s %d\n\n", p.label.Render("📄 Total files:"), summary.Files)

	writeChecklist(&builder, p, summary.Checks)

	builder.WriteString("\n" + p.banner.Render(heavy) + "\n")
	builder.WriteString(p.banner.Render(markFound+" DONE!") + "\n")
	builder.WriteString(p.banner.Render(heavy) + "\n")

	_, _ = io.WriteString(w, builder.String())
}

// renderChecklist prints only the manifest checklist.
func renderChecklist(w io.Writer, results []archive.CheckResult) {
	var builder strings.Builder

	writeChecklist(&builder, newPalette(w), results)

	_, _ = io.WriteString(w, builder.String())
}

func writeChecklist(builder *strings.Builder, p palette, results []archive.CheckResult) {
	builder.WriteString("🔍 Verifying important files:\n")
	builder.WriteString(strings.Repeat("-", ruleWidth) + "\n")

	for _, result := range results {
		if result.Found {
			builder.WriteString("  " + p.found.Render(markFound+" "+result.Check.Label) + "\n")
		} else {
			builder.WriteString("  " + p.missing.Render(markMissing+" "+result.Check.Label) + "\n")
		}
	}
}
