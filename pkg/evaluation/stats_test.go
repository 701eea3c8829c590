package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	t.Parallel()

	values := []float64{4, 1, 3, 2, 5}

	assert.Equal(t, 1.0, percentile(values, 0))
	assert.Equal(t, 3.0, percentile(values, 0.5))
	assert.Equal(t, 5.0, percentile(values, 1))
	assert.InDelta(t, 2.0, percentile(values, 0.25), 1e-9)
	assert.InDelta(t, 4.9, percentile(values, 0.975), 1e-9)

	// Input order must not matter and the input must not be mutated.
	assert.Equal(t, []float64{4, 1, 3, 2, 5}, values)
}

func TestPercentile_Interpolates(t *testing.T) {
	t.Parallel()

	values := []float64{0, 10}
	assert.InDelta(t, 5.0, median(values), 1e-9)
	assert.InDelta(t, 2.5, percentile(values, 0.25), 1e-9)
}

func TestPercentile_Edges(t *testing.T) {
	t.Parallel()

	assert.Zero(t, percentile(nil, 0.5))
	assert.Equal(t, 7.0, percentile([]float64{7}, 0.5))
}
