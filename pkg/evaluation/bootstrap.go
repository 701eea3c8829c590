package evaluation

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"slices"

	"github.com/rgabbard/bue-common-open/internal/logging"
)

// DefaultBootstrapSamples is the number of resamples drawn when the
// configuration does not specify one.
const DefaultBootstrapSamples = 1000

// bootstrapMetrics are the scores reported for each category, in report
// column order.
var bootstrapMetrics = []string{"precision", "recall", "f1"}

// BootstrapConfig controls bootstrap resampling.
type BootstrapConfig struct {
	// Samples is the number of bootstrap resamples. Zero means
	// DefaultBootstrapSamples.
	Samples int
	// Seed feeds the resampling RNG so runs are reproducible.
	Seed uint64
}

// BootstrapAggregator collects per-observation score counts broken down by
// category and, on Finish, writes bootstrap confidence estimates for
// precision, recall and F1 to the output directory.
//
// Each Observe call contributes one observation, typically the counts for a
// single document. Resampling draws whole observations with replacement, so
// the reported intervals reflect document-level variance.
type BootstrapAggregator struct {
	name         string
	outputDir    string
	config       BootstrapConfig
	observations []map[string]FMeasureCounts
}

// NewBootstrapAggregator creates an aggregator writing its reports under
// outputDir with file names derived from name.
func NewBootstrapAggregator(name, outputDir string, config BootstrapConfig) *BootstrapAggregator {
	if config.Samples <= 0 {
		config.Samples = DefaultBootstrapSamples
	}
	return &BootstrapAggregator{
		name:      name,
		outputDir: outputDir,
		config:    config,
	}
}

// Observe records one observation's counts broken down by category.
// Categories absent from a sample count as zero for that observation.
func (a *BootstrapAggregator) Observe(sample map[string]FMeasureCounts) {
	copied := make(map[string]FMeasureCounts, len(sample))
	for category, counts := range sample {
		copied[category] = counts
	}
	a.observations = append(a.observations, copied)
}

// Finish resamples the collected observations and writes the report files.
// It is an error to call Finish before any observation was recorded.
func (a *BootstrapAggregator) Finish() error {
	if len(a.observations) == 0 {
		return fmt.Errorf("bootstrap aggregator %q: no observations", a.name)
	}

	samples := a.resample()

	report := newBootstrapReport(a.name, samples)
	if err := report.writeTo(a.outputDir); err != nil {
		return fmt.Errorf("write bootstrap report: %w", err)
	}

	logging.Default().Info("wrote bootstrap report",
		"name", a.name,
		logging.FieldOutput, filepath.Join(a.outputDir, a.name+".bootstrapped.txt"),
		logging.FieldSamples, a.config.Samples,
		logging.FieldSeed, a.config.Seed)
	return nil
}

// categories returns every category seen in any observation, sorted.
func (a *BootstrapAggregator) categories() []string {
	seen := make(map[string]struct{})
	for _, observation := range a.observations {
		for category := range observation {
			seen[category] = struct{}{}
		}
	}
	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	slices.Sort(categories)
	return categories
}

// resample draws the configured number of bootstrap samples. For each sample
// it picks len(observations) observations with replacement, sums their counts
// per category, and records the resulting precision, recall and F1.
func (a *BootstrapAggregator) resample() map[string]map[string][]float64 {
	categories := a.categories()
	rng := rand.New(rand.NewPCG(a.config.Seed, a.config.Seed))

	samples := make(map[string]map[string][]float64, len(categories))
	for _, category := range categories {
		samples[category] = map[string][]float64{
			"precision": make([]float64, 0, a.config.Samples),
			"recall":    make([]float64, 0, a.config.Samples),
			"f1":        make([]float64, 0, a.config.Samples),
		}
	}

	totals := make(map[string]FMeasureCounts, len(categories))
	for range a.config.Samples {
		clear(totals)
		for range a.observations {
			observation := a.observations[rng.IntN(len(a.observations))]
			for category, counts := range observation {
				totals[category] = totals[category].Add(counts)
			}
		}
		for _, category := range categories {
			counts := totals[category]
			samples[category]["precision"] = append(samples[category]["precision"], counts.Precision())
			samples[category]["recall"] = append(samples[category]["recall"], counts.Recall())
			samples[category]["f1"] = append(samples[category]["f1"], counts.F1())
		}
	}
	return samples
}
