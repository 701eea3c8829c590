package evaluation

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/rgabbard/bue-common-open/pkg/files"
)

// bootstrapReport formats resampled score distributions as the four report
// files: a human-readable chart, a percentile CSV, a medians CSV, and a raw
// dump of every sample value.
type bootstrapReport struct {
	name       string
	categories []string
	// samples maps category -> metric -> sample values.
	samples map[string]map[string][]float64
}

func newBootstrapReport(name string, samples map[string]map[string][]float64) *bootstrapReport {
	categories := make([]string, 0, len(samples))
	for category := range samples {
		categories = append(categories, category)
	}
	slices.Sort(categories)
	return &bootstrapReport{name: name, categories: categories, samples: samples}
}

func (r *bootstrapReport) writeTo(outputDir string) error {
	outputs := []struct {
		suffix string
		render func() []byte
	}{
		{".bootstrapped.txt", r.renderChart},
		{".bootstrapped.csv", r.renderPercentileCSV},
		{".bootstrapped.medians.csv", r.renderMediansCSV},
		{".bootstrapped.raw", r.renderRaw},
	}
	for _, output := range outputs {
		path := filepath.Join(outputDir, r.name+output.suffix)
		if err := files.WriteAtomic(path, output.render(), 0); err != nil {
			return fmt.Errorf("write %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// renderChart produces the human-readable percentile chart.
func (r *bootstrapReport) renderChart() []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Bootstrapped scores for %s\n\n", r.name)

	categoryWidth := len("Category")
	for _, category := range r.categories {
		if len(category) > categoryWidth {
			categoryWidth = len(category)
		}
	}

	for _, metric := range bootstrapMetrics {
		fmt.Fprintf(&buf, "%s\n", strings.ToUpper(metric))
		fmt.Fprintf(&buf, "%-*s", categoryWidth, "Category")
		for _, q := range bootstrapPercentiles {
			fmt.Fprintf(&buf, "  %7s", percentileLabel(q))
		}
		buf.WriteByte('\n')
		for _, category := range r.categories {
			fmt.Fprintf(&buf, "%-*s", categoryWidth, category)
			for _, q := range bootstrapPercentiles {
				fmt.Fprintf(&buf, "  %7.2f", 100*percentile(r.samples[category][metric], q))
			}
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// renderPercentileCSV produces one row per category and metric with all
// reported percentiles.
func (r *bootstrapReport) renderPercentileCSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"category", "metric"}
	for _, q := range bootstrapPercentiles {
		header = append(header, percentileLabel(q))
	}
	_ = w.Write(header)

	for _, category := range r.categories {
		for _, metric := range bootstrapMetrics {
			row := []string{category, metric}
			for _, q := range bootstrapPercentiles {
				row = append(row, formatScore(percentile(r.samples[category][metric], q)))
			}
			_ = w.Write(row)
		}
	}
	w.Flush()
	return buf.Bytes()
}

// renderMediansCSV produces one row per category with the median of each
// metric, the summary most consumers want.
func (r *bootstrapReport) renderMediansCSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"category", "precision", "recall", "f1"})
	for _, category := range r.categories {
		row := []string{category}
		for _, metric := range bootstrapMetrics {
			row = append(row, formatScore(median(r.samples[category][metric])))
		}
		_ = w.Write(row)
	}
	w.Flush()
	return buf.Bytes()
}

// renderRaw dumps every sample value so downstream tools can compute their
// own statistics. One line per category and metric, values space-separated.
func (r *bootstrapReport) renderRaw() []byte {
	var buf bytes.Buffer
	for _, category := range r.categories {
		for _, metric := range bootstrapMetrics {
			fmt.Fprintf(&buf, "%s\t%s\t", category, metric)
			for i, value := range r.samples[category][metric] {
				if i > 0 {
					buf.WriteByte(' ')
				}
				buf.WriteString(formatScore(value))
			}
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

func percentileLabel(q float64) string {
	return strconv.FormatFloat(100*q, 'f', -1, 64) + "%"
}

func formatScore(value float64) string {
	return strconv.FormatFloat(value, 'f', 6, 64)
}
