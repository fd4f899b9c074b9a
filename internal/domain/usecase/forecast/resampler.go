package forecast

// pointsPerCoarseUnit is how many fine-grained points each coarse value
// covers when a monthly series is expanded to a finer granularity.
const pointsPerCoarseUnit = 30

// expandSeries expands a coarse series into exactly targetLength points by
// repeating each coarse value pointsPerCoarseUnit times, stopping as soon as
// the target is reached. If the coarse series runs out first, the last
// produced value is repeated until the target is reached. This is a
// deterministic nearest-known-value forward fill, not interpolation.
//
// An empty coarse series or a non-positive target yields an empty result.
func expandSeries(coarse []float64, targetLength int) []float64 {
	if len(coarse) == 0 || targetLength <= 0 {
		return []float64{}
	}

	expanded := make([]float64, 0, targetLength)
	for _, value := range coarse {
		for i := 0; i < pointsPerCoarseUnit; i++ {
			if len(expanded) >= targetLength {
				return expanded
			}
			expanded = append(expanded, value)
		}
	}

	last := expanded[len(expanded)-1]
	for len(expanded) < targetLength {
		expanded = append(expanded, last)
	}

	return expanded
}
