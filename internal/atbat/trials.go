package atbat

const (
	DefaultSampleSize = 1000
	NeutralParkFactor = 1.0
)

// RunTrials simulates sampleSize independent plate appearances between batter
// and pitcher and tallies the outcomes.
//
// The distribution is built once and reused for every trial. Only counts are
// kept while drawing; the park factor adjustment (see ApplyParkFactor) and the
// summary are applied to the final counts. With a seeded Sampler the result is
// reproducible bit for bit.
//
// A sampleSize of 0 yields an all-zero tally. A nil sampler uses DefaultRNG.
func RunTrials(batter, pitcher Rates, sampleSize int, parkFactor float64, s Sampler) (Tally, error) {
	if sampleSize < 0 {
		return Tally{}, ErrInvalidSampleSize
	}
	if err := validateParkFactor(parkFactor); err != nil {
		return Tally{}, err
	}
	d := BuildDistribution(batter, pitcher)
	if sampleSize > 0 && d.Degenerate() {
		return Tally{}, ErrDegenerateDistribution
	}
	if s == nil {
		s = NewSampler(nil)
	}

	weights := d.Weights()
	var counts [NumOutcomes]int
	for i := 0; i < sampleSize; i++ {
		idx := s.SampleIndex(weights)
		if idx < 0 || idx >= NumOutcomes {
			idx = FieldOut.index()
		}
		counts[idx]++
	}

	counts = ApplyParkFactor(counts, parkFactor)
	return newTally(counts, sampleSize, parkFactor), nil
}
