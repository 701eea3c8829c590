package pretty

import (
	"fmt"
	"strings"

	"github.com/rgabbard/bue-common-open/pkg/located"
)

// Table formatting constants.
const (
	skipSymbol       = "~"
	tablePadding     = 2
	minTextWidth     = 16
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// RegionRow represents a single row in the region table.
type RegionRow struct {
	Positions string
	Chars     string
	EDTs      string
	Bytes     string
	Text      string
	Skip      bool
}

// RegionTableFormatter formats a located string's region map as a styled
// table, one row per region.
type RegionTableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewRegionTableFormatter creates a new region table formatter.
func NewRegionTableFormatter(styles *Styles, termWidth int) *RegionTableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &RegionTableFormatter{styles: styles, termWidth: termWidth}
}

// FormatTable formats the regions of ls as a styled table with a summary
// footer.
func (f *RegionTableFormatter) FormatTable(name string, ls *located.LocatedString) string {
	rows := collectRegionRows(ls)
	widths := f.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(f.styles.FilePath.Render(name))
	builder.WriteString("\n")

	builder.WriteString(f.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(f.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(f.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(f.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(f.formatSummary(ls, rows))
	builder.WriteString("\n")
	builder.WriteString(f.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// collectRegionRows converts the regions of ls into display rows.
func collectRegionRows(ls *located.LocatedString) []RegionRow {
	runes := []rune(ls.Text())
	regions := ls.Regions()

	rows := make([]RegionRow, 0, len(regions))
	for _, region := range regions {
		row := RegionRow{
			Positions: fmt.Sprintf("[%d:%d)", region.StartPos(), region.EndPos()),
			Chars:     fmt.Sprintf("%d..%d", region.StartOffset().CharOffset(), region.EndOffset().CharOffset()),
			EDTs:      fmt.Sprintf("%d..%d", region.StartOffset().EDTOffset(), region.EndOffset().EDTOffset()),
			Text:      printableText(string(runes[region.StartPos():region.EndPos()])),
			Skip:      region.IsEDTSkipRegion(),
		}
		if startByte, ok := region.StartOffset().ByteOffset(); ok {
			endByte, _ := region.EndOffset().ByteOffset()
			row.Bytes = fmt.Sprintf("%d..%d", startByte, endByte)
		}
		rows = append(rows, row)
	}
	return rows
}

type regionColumnWidths struct {
	positions int
	chars     int
	edts      int
	bytes     int
	text      int
}

// calculateColumnWidths determines column widths based on content,
// constrained to the terminal width by shrinking the text column.
func (f *RegionTableFormatter) calculateColumnWidths(rows []RegionRow) regionColumnWidths {
	widths := regionColumnWidths{
		positions: len("POS"),
		chars:     len("CHAR"),
		edts:      len("EDT"),
		bytes:     len("BYTE"),
		text:      minTextWidth,
	}

	for _, row := range rows {
		if len(row.Positions) > widths.positions {
			widths.positions = len(row.Positions)
		}
		if len(row.Chars) > widths.chars {
			widths.chars = len(row.Chars)
		}
		if len(row.EDTs) > widths.edts {
			widths.edts = len(row.EDTs)
		}
		if len(row.Bytes) > widths.bytes {
			widths.bytes = len(row.Bytes)
		}
		if len(row.Text) > widths.text {
			widths.text = len(row.Text)
		}
	}

	totalWidth := f.calculateTotalWidth(widths)
	if totalWidth > f.termWidth {
		excess := totalWidth - f.termWidth
		widths.text = max(minTextWidth, widths.text-excess)
	}

	return widths
}

func (f *RegionTableFormatter) calculateTotalWidth(widths regionColumnWidths) int {
	// Five data columns plus the skip indicator.
	return widths.positions + widths.chars + widths.edts + widths.bytes + widths.text +
		tablePadding*6 + 1
}

// formatHeader formats the table header row.
func (f *RegionTableFormatter) formatHeader(widths regionColumnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s   ",
		widths.positions, "POS",
		widths.chars, "CHAR",
		widths.edts, "EDT",
		widths.bytes, "BYTE",
		widths.text, "TEXT",
	)
	return f.styles.TableHeader.Render(header)
}

// formatSeparator formats a separator line.
func (f *RegionTableFormatter) formatSeparator(widths regionColumnWidths, char string) string {
	sep := strings.Repeat(char, f.calculateTotalWidth(widths))
	return f.styles.TableSeparator.Render(sep)
}

// formatRow formats a single table row, highlighting skip regions.
func (f *RegionTableFormatter) formatRow(row RegionRow, widths regionColumnWidths) string {
	skip := " "
	if row.Skip {
		skip = skipSymbol
	}

	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s  %s",
		widths.positions, row.Positions,
		widths.chars, row.Chars,
		widths.edts, row.EDTs,
		widths.bytes, row.Bytes,
		widths.text, truncateString(row.Text, widths.text),
		skip,
	)

	if row.Skip {
		return f.styles.TableSkipRow.Render(content)
	}
	return content
}

// formatSummary formats the footer line with region and offset totals.
func (f *RegionTableFormatter) formatSummary(ls *located.LocatedString, rows []RegionRow) string {
	skipped := 0
	for _, row := range rows {
		if row.Skip {
			skipped++
		}
	}

	parts := []string{
		fmt.Sprintf("%d chars", ls.Length()),
		fmt.Sprintf("%d regions", len(rows)),
	}
	if skipped > 0 {
		parts = append(parts, f.styles.TableSkipRow.Render(fmt.Sprintf("%d skipped", skipped)))
	}
	parts = append(parts, f.styles.Dim.Render(fmt.Sprintf("EDT %d..%d", ls.StartEDTOffset(), ls.EndEDTOffset())))

	return " " + strings.Join(parts, " | ")
}

// formatLegend formats the legend explaining the table symbols.
func (f *RegionTableFormatter) formatLegend() string {
	return f.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = region skipped in the EDT view", skipSymbol),
	)
}

// printableText makes region text safe for single-line display.
func printableText(text string) string {
	replacer := strings.NewReplacer("\r", "\\r", "\n", "\\n", "\t", "\\t")
	return replacer.Replace(text)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
