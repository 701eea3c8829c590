package pretty

import (
	"fmt"
	"strings"
)

// ScoreRow is one category's scores in a score table.
type ScoreRow struct {
	Category  string
	Precision float64
	Recall    float64
	F1        float64
}

// ScoreTableFormatter formats per-category precision/recall/F1 scores as a
// styled table.
type ScoreTableFormatter struct {
	styles *Styles
}

// NewScoreTableFormatter creates a new score table formatter.
func NewScoreTableFormatter(styles *Styles) *ScoreTableFormatter {
	return &ScoreTableFormatter{styles: styles}
}

const scoreColumnWidth = 9 // fits "100.00"

// FormatTable formats rows as a styled score table titled with name.
// Scores are shown as percentages.
func (f *ScoreTableFormatter) FormatTable(name string, rows []ScoreRow) string {
	categoryWidth := len("CATEGORY")
	for _, row := range rows {
		if len(row.Category) > categoryWidth {
			categoryWidth = len(row.Category)
		}
	}

	totalWidth := categoryWidth + 3*scoreColumnWidth + tablePadding*4

	var builder strings.Builder

	builder.WriteString(f.styles.Title.Render(name))
	builder.WriteString("\n")

	header := fmt.Sprintf(" %-*s  %*s  %*s  %*s ",
		categoryWidth, "CATEGORY",
		scoreColumnWidth, "PRECISION",
		scoreColumnWidth, "RECALL",
		scoreColumnWidth, "F1",
	)
	builder.WriteString(f.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(f.styles.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth)))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(fmt.Sprintf(" %-*s  %*.2f  %*.2f  %*.2f ",
			categoryWidth, row.Category,
			scoreColumnWidth, 100*row.Precision,
			scoreColumnWidth, 100*row.Recall,
			scoreColumnWidth, 100*row.F1,
		))
		builder.WriteString("\n")
	}

	builder.WriteString(f.styles.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth)))
	builder.WriteString("\n")

	return builder.String()
}
