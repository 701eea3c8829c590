package evaluation

import "slices"

// bootstrapPercentiles are the quantiles reported for every bootstrapped
// score distribution.
var bootstrapPercentiles = []float64{0.025, 0.05, 0.25, 0.5, 0.75, 0.95, 0.975}

// percentile returns the q-th quantile of values using linear interpolation
// between the two nearest order statistics. values need not be sorted.
// Returns 0 for an empty slice.
func percentile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(pos)
	frac := pos - float64(lower)
	if lower+1 >= len(sorted) {
		return sorted[lower]
	}
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// median is the 50th percentile.
func median(values []float64) float64 {
	return percentile(values, 0.5)
}
