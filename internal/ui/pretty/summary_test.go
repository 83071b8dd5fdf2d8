package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/qdiff/internal/ui/pretty"
	"github.com/yaklabco/qdiff/pkg/bindiff"
)

func statsOf(events ...bindiff.Event) bindiff.Stats {
	var stats bindiff.Stats
	for _, ev := range events {
		stats.Add(ev)
	}
	return stats
}

func TestFormatSummaryOneLine_Identical(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummaryOneLine(statsOf(bindiff.Match(123456)))

	assert.Equal(t, "files are identical (123,456 bytes)\n", result)
}

func TestFormatSummaryOneLine_Differences(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummaryOneLine(statsOf(
		bindiff.Match(2048),
		bindiff.Delete(3),
		bindiff.Substitute(4, 1, 0),
		bindiff.Insert(7),
	))

	assert.Equal(t, "4 events: 2,048 bytes match, 3 deleted, 7 inserted, 4/5 substituted\n", result)
}

func TestFormatSummaryOneLine_Empty(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "nothing compared\n", styles.FormatSummaryOneLine(bindiff.Stats{}))
}

func TestFormatSummaryOneLine_SingleEvent(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummaryOneLine(statsOf(bindiff.Insert(5)))

	assert.Equal(t, "1 event: 5 inserted\n", result)
}

func TestFormatSummary_Differ(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(statsOf(
		bindiff.Match(10),
		bindiff.Delete(2),
		bindiff.Match(10),
	), "a.bin", "b.bin")

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "First file:        a.bin")
	assert.Contains(t, result, "Second file:       b.bin")
	assert.Contains(t, result, "Matching bytes:    20 (2 events)")
	assert.Contains(t, result, "Deleted bytes:     2 (1 event)")
	assert.NotContains(t, result, "Inserted bytes:")
	assert.NotContains(t, result, "Substituted bytes:")
	assert.Contains(t, result, "Files differ")
}

func TestFormatSummary_Identical(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(statsOf(bindiff.Match(8)), "x", "y")

	assert.Contains(t, result, "Files are identical")
	assert.NotContains(t, result, "Deleted bytes:")
}

func TestFormatNotice(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "both files are empty, nothing to compare\n",
		styles.FormatNotice("both files are empty, nothing to compare"))
}
