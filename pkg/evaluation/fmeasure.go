// Package evaluation provides precision/recall/F-measure bookkeeping and
// bootstrap-resampled score reports for scoring annotation system output
// against a gold standard.
package evaluation

// FMeasureCounts holds the raw counts behind precision and recall. Counts
// are float64 because partial credit is allowed.
type FMeasureCounts struct {
	TruePositives  float64
	FalsePositives float64
	FalseNegatives float64
}

// Precision returns TP / (TP + FP), or 0 when nothing was predicted.
func (f FMeasureCounts) Precision() float64 {
	denom := f.TruePositives + f.FalsePositives
	if denom == 0 {
		return 0
	}
	return f.TruePositives / denom
}

// Recall returns TP / (TP + FN), or 0 when nothing was present.
func (f FMeasureCounts) Recall() float64 {
	denom := f.TruePositives + f.FalseNegatives
	if denom == 0 {
		return 0
	}
	return f.TruePositives / denom
}

// F1 returns the harmonic mean of precision and recall, or 0 when both are 0.
func (f FMeasureCounts) F1() float64 {
	p := f.Precision()
	r := f.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// Add returns the element-wise sum of two count sets.
func (f FMeasureCounts) Add(other FMeasureCounts) FMeasureCounts {
	return FMeasureCounts{
		TruePositives:  f.TruePositives + other.TruePositives,
		FalsePositives: f.FalsePositives + other.FalsePositives,
		FalseNegatives: f.FalseNegatives + other.FalseNegatives,
	}
}
