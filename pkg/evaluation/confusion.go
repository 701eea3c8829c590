package evaluation

import (
	"slices"
	"strings"

	"github.com/rgabbard/bue-common-open/pkg/symbols"
)

// SummaryConfusionMatrix accumulates counts of (predicted, actual) label
// pairs. Cells are sparse; untouched pairs count as zero.
type SummaryConfusionMatrix struct {
	cells map[symbols.Symbol]map[symbols.Symbol]float64
}

// NewSummaryConfusionMatrix creates an empty matrix.
func NewSummaryConfusionMatrix() *SummaryConfusionMatrix {
	return &SummaryConfusionMatrix{cells: make(map[symbols.Symbol]map[symbols.Symbol]float64)}
}

// Accumulate adds count to the (predicted, actual) cell.
func (m *SummaryConfusionMatrix) Accumulate(predicted, actual symbols.Symbol, count float64) {
	row, ok := m.cells[predicted]
	if !ok {
		row = make(map[symbols.Symbol]float64)
		m.cells[predicted] = row
	}
	row[actual] += count
}

// Cell returns the count in the (predicted, actual) cell.
func (m *SummaryConfusionMatrix) Cell(predicted, actual symbols.Symbol) float64 {
	return m.cells[predicted][actual]
}

// Labels returns every label appearing as a predicted or actual value,
// sorted by text.
func (m *SummaryConfusionMatrix) Labels() []symbols.Symbol {
	seen := make(map[symbols.Symbol]struct{})
	for predicted, row := range m.cells {
		seen[predicted] = struct{}{}
		for actual := range row {
			seen[actual] = struct{}{}
		}
	}
	labels := make([]symbols.Symbol, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	slices.SortFunc(labels, func(a, b symbols.Symbol) int {
		return strings.Compare(a.String(), b.String())
	})
	return labels
}

// FMeasureVsAllOthers scores positive against everything else: a predicted
// positive with a different actual label is a false positive, an actual
// positive predicted as anything else is a false negative.
func (m *SummaryConfusionMatrix) FMeasureVsAllOthers(positive symbols.Symbol) FMeasureCounts {
	var counts FMeasureCounts
	counts.TruePositives = m.Cell(positive, positive)
	for actual, count := range m.cells[positive] {
		if actual != positive {
			counts.FalsePositives += count
		}
	}
	for predicted, row := range m.cells {
		if predicted != positive {
			counts.FalseNegatives += row[positive]
		}
	}
	return counts
}
