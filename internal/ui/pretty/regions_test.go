package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgabbard/bue-common-open/internal/ui/pretty"
	"github.com/rgabbard/bue-common-open/pkg/located"
)

func TestRegionTableFormatter(t *testing.T) {
	t.Parallel()

	ls, err := located.FromText("ab<i>c</i>d", located.GroupFromMatchingCharAndEDT(0))
	require.NoError(t, err)

	formatter := pretty.NewRegionTableFormatter(pretty.NewStyles(false), 120)
	out := formatter.FormatTable("doc.sgml", ls)

	assert.Contains(t, out, "doc.sgml")
	assert.Contains(t, out, "POS")
	assert.Contains(t, out, "CHAR")
	assert.Contains(t, out, "EDT")
	assert.Contains(t, out, "[0:2)")
	assert.Contains(t, out, "<i>")
	assert.Contains(t, out, "5 regions")
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "Legend")
}

func TestRegionTableFormatter_EscapesControlCharacters(t *testing.T) {
	t.Parallel()

	ls, err := located.FromText("a\rb", located.GroupFromMatchingCharAndEDT(0))
	require.NoError(t, err)

	formatter := pretty.NewRegionTableFormatter(pretty.NewStyles(false), 120)
	out := formatter.FormatTable("crlf.txt", ls)

	assert.Contains(t, out, `\r`)
	assert.NotContains(t, out, "\r")
}

func TestRegionTableFormatter_NarrowTerminal(t *testing.T) {
	t.Parallel()

	ls, err := located.FromText("prefix "+strings.Repeat("x", 200)+" suffix",
		located.GroupFromMatchingCharAndEDT(0))
	require.NoError(t, err)

	formatter := pretty.NewRegionTableFormatter(pretty.NewStyles(false), 60)
	out := formatter.FormatTable("wide.txt", ls)

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 70, "line should respect the terminal width")
	}
	assert.Contains(t, out, "...")
}

func TestScoreTableFormatter(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewScoreTableFormatter(pretty.NewStyles(false))
	out := formatter.FormatTable("Scores", []pretty.ScoreRow{
		{Category: "PERSON", Precision: 0.9, Recall: 0.8, F1: 0.847},
		{Category: "ORG", Precision: 0.5, Recall: 1, F1: 2.0 / 3},
	})

	assert.Contains(t, out, "Scores")
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "PRECISION")
	assert.Contains(t, out, "PERSON")
	assert.Contains(t, out, "90.00")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "66.67")
}
