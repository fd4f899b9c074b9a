package cityaqi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqi-api/internal/domain/entity"
)

func coordinate(lat, lon float64) entity.CityCoordinateEntry {
	return entity.CityCoordinateEntry{Lat: &lat, Lon: &lon}
}

func TestResolveExactMatchWinsOverSubstring(t *testing.T) {
	table := entity.CoordinateTable{
		"Paris":       coordinate(48.85, 2.35),
		"Paris Texas": coordinate(33.66, -95.55),
	}

	result := Resolve("Paris", table)

	require.NotNil(t, result)
	assert.Equal(t, "Paris", result.MatchedKey)
}

func TestResolveExactMatchIsCaseInsensitive(t *testing.T) {
	table := entity.CoordinateTable{
		"Delhi_India": coordinate(28.61, 77.2),
	}

	result := Resolve("delhi_india", table)

	require.NotNil(t, result)
	assert.Equal(t, "Delhi_India", result.MatchedKey)
}

func TestResolveSubstringPrefersClosestLength(t *testing.T) {
	table := entity.CoordinateTable{
		"Delhi_India":     coordinate(28.61, 77.2),
		"New Delhi_India": coordinate(28.64, 77.22),
	}

	result := Resolve("Delhi", table)

	require.NotNil(t, result)
	assert.Equal(t, "Delhi_India", result.MatchedKey)
}

func TestResolveIgnoresDiacriticsAndPunctuation(t *testing.T) {
	table := entity.CoordinateTable{
		"Sao Paulo_Brazil": coordinate(-23.55, -46.63),
	}

	result := Resolve("São Paulo", table)

	require.NotNil(t, result)
	assert.Equal(t, "Sao Paulo_Brazil", result.MatchedKey)
}

func TestResolvePositionalOverlapFallback(t *testing.T) {
	table := entity.CoordinateTable{
		"Mumbai_India": coordinate(19.07, 72.87),
	}

	// no substring relation, but a shared prefix
	result := Resolve("Mumbei", table)

	require.NotNil(t, result)
	assert.Equal(t, "Mumbai_India", result.MatchedKey)
}

func TestResolveNoMatch(t *testing.T) {
	table := entity.CoordinateTable{
		"Tokyo_Japan": coordinate(35.67, 139.65),
	}

	assert.Nil(t, Resolve("Qqzz", table))
}

func TestResolveEmptyTable(t *testing.T) {
	assert.Nil(t, Resolve("Paris", entity.CoordinateTable{}))
	assert.Nil(t, Resolve("Paris", nil))
}

func TestResolveIsDeterministic(t *testing.T) {
	table := entity.CoordinateTable{
		"Springfield_A": coordinate(1, 1),
		"Springfield_B": coordinate(2, 2),
	}

	first := Resolve("Springfield", table)
	require.NotNil(t, first)

	for i := 0; i < 20; i++ {
		again := Resolve("Springfield", table)
		require.NotNil(t, again)
		assert.Equal(t, first.MatchedKey, again.MatchedKey)
	}
}
