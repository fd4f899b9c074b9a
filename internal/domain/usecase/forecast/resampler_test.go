package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandSeriesRepeatsEachCoarseValue(t *testing.T) {
	expanded := expandSeries([]float64{10, 20}, 60)

	assert.Len(t, expanded, 60)
	for i := 0; i < 30; i++ {
		assert.Equal(t, 10.0, expanded[i])
	}
	for i := 30; i < 60; i++ {
		assert.Equal(t, 20.0, expanded[i])
	}
}

func TestExpandSeriesStopsMidRepetition(t *testing.T) {
	expanded := expandSeries([]float64{10, 20}, 35)

	assert.Len(t, expanded, 35)
	assert.Equal(t, 10.0, expanded[29])
	assert.Equal(t, 20.0, expanded[30])
	assert.Equal(t, 20.0, expanded[34])
}

func TestExpandSeriesPadsWithLastValue(t *testing.T) {
	expanded := expandSeries([]float64{5}, 48)

	assert.Len(t, expanded, 48)
	for _, value := range expanded {
		assert.Equal(t, 5.0, value)
	}
}

func TestExpandSeriesAlwaysReturnsExactLength(t *testing.T) {
	for _, target := range []int{1, 29, 30, 31, 90, 200} {
		expanded := expandSeries([]float64{1, 2, 3}, target)
		assert.Len(t, expanded, target)
	}
}

func TestExpandSeriesEmptyInputs(t *testing.T) {
	assert.Empty(t, expandSeries(nil, 10))
	assert.Empty(t, expandSeries([]float64{}, 10))
	assert.Empty(t, expandSeries([]float64{1, 2}, 0))
	assert.Empty(t, expandSeries([]float64{1, 2}, -5))
}
