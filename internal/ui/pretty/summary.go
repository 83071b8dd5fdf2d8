package pretty

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/yaklabco/qdiff/pkg/bindiff"
)

const (
	summaryDividerWidth = 40
	wordEvent           = "event"
	wordEvents          = "events"
)

// FormatNotice styles an informational line about the inputs.
func (s *Styles) FormatNotice(msg string) string {
	return s.Notice.Render(msg) + "\n"
}

// FormatSummaryOneLine formats diff statistics as a single line.
// Example: "3 events: 1,024 bytes match, 2 deleted, 5 inserted".
func (s *Styles) FormatSummaryOneLine(stats bindiff.Stats) string {
	if stats.Events() == 0 {
		return s.Dim.Render("nothing compared") + "\n"
	}
	if stats.Identical() {
		return s.Success.Render("files are identical") +
			s.Dim.Render(fmt.Sprintf(" (%s bytes)", humanize.Comma(stats.Matched))) + "\n"
	}

	var parts []string
	if stats.Matched > 0 {
		parts = append(parts, s.Match.Render(humanize.Comma(stats.Matched)+" bytes match"))
	}
	if stats.Deleted > 0 {
		parts = append(parts, s.Deletion.Render(humanize.Comma(stats.Deleted)+" deleted"))
	}
	if stats.Inserted > 0 {
		parts = append(parts, s.Insertion.Render(humanize.Comma(stats.Inserted)+" inserted"))
	}
	if stats.Substituted1 > 0 || stats.Substituted2 > 0 {
		parts = append(parts, s.Substitution.Render(fmt.Sprintf("%s/%s substituted",
			humanize.Comma(stats.Substituted1), humanize.Comma(stats.Substituted2))))
	}

	return fmt.Sprintf("%d %s: %s\n", stats.Events(), lo.Ternary(stats.Events() == 1, wordEvent, wordEvents),
		strings.Join(parts, ", "))
}

// FormatSummary formats diff statistics as a summary block.
func (s *Styles) FormatSummary(stats bindiff.Stats, name1, name2 string) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  First file:        " + s.FilePath.Render(name1) + "\n")
	builder.WriteString("  Second file:       " + s.FilePath.Render(name2) + "\n")
	builder.WriteString("\n")

	row := func(label string, style func(...string) string, count int, bytes string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s", label+":", style(bytes)))
		builder.WriteString(s.Dim.Render(fmt.Sprintf(" (%d %s)", count, lo.Ternary(count == 1, wordEvent, wordEvents))) + "\n")
	}
	row("Matching bytes", s.Match.Render, stats.Counts[bindiff.KindMatch], humanize.Comma(stats.Matched))
	if stats.Deleted > 0 {
		row("Deleted bytes", s.Deletion.Render, stats.Counts[bindiff.KindDelete], humanize.Comma(stats.Deleted))
	}
	if stats.Inserted > 0 {
		row("Inserted bytes", s.Insertion.Render, stats.Counts[bindiff.KindInsert], humanize.Comma(stats.Inserted))
	}
	if stats.Substituted1 > 0 || stats.Substituted2 > 0 {
		row("Substituted bytes", s.Substitution.Render, stats.Counts[bindiff.KindSubstitute],
			humanize.Comma(stats.Substituted1)+"/"+humanize.Comma(stats.Substituted2))
	}

	builder.WriteString("\n")

	if stats.Identical() {
		builder.WriteString(s.Success.Render("Files are identical"))
	} else {
		builder.WriteString(s.Failure.Render("Files differ"))
	}
	builder.WriteString("\n")

	return builder.String()
}
