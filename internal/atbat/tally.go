package atbat

import "math"

// Summary holds the rate stats derived from a Tally.
type Summary struct {
	BattingAverage     float64 `json:"avg"`
	OnBasePercentage   float64 `json:"obp"`
	SluggingPercentage float64 `json:"slg"`
	SampleSize         int     `json:"sample_size"`
	ParkFactor         float64 `json:"park_factor"`
}

// OPS is on-base plus slugging.
func (s Summary) OPS() float64 {
	return s.OnBasePercentage + s.SluggingPercentage
}

// Tally is the outcome count of one simulation run. The summary is derived
// from the counts once, at construction.
type Tally struct {
	Counts  [NumOutcomes]int `json:"counts"`
	Summary Summary          `json:"summary"`
}

// OutcomeCount is one row of a Tally breakdown.
type OutcomeCount struct {
	Outcome  Outcome `json:"outcome"`
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Fraction float64 `json:"pct"`
}

func (t Tally) Count(o Outcome) int {
	i := o.index()
	if i < 0 {
		return 0
	}
	return t.Counts[i]
}

// Fraction is count/sample size, 0 for an empty run.
func (t Tally) Fraction(o Outcome) float64 {
	if t.Summary.SampleSize == 0 {
		return 0
	}
	return float64(t.Count(o)) / float64(t.Summary.SampleSize)
}

// Total sums all counts; it always equals the sample size.
func (t Tally) Total() int {
	n := 0
	for _, c := range t.Counts {
		n += c
	}
	return n
}

// Breakdown lists every outcome in Outcomes order.
func (t Tally) Breakdown() []OutcomeCount {
	rows := make([]OutcomeCount, 0, NumOutcomes)
	for _, o := range Outcomes {
		rows = append(rows, OutcomeCount{
			Outcome:  o,
			Name:     o.Name(),
			Count:    t.Count(o),
			Fraction: t.Fraction(o),
		})
	}
	return rows
}

// newTally derives the summary from final counts.
func newTally(counts [NumOutcomes]int, n int, parkFactor float64) Tally {
	t := Tally{Counts: counts}
	t.Summary = Summary{SampleSize: n, ParkFactor: parkFactor}
	if n == 0 {
		return t
	}

	hits, totalBases := 0, 0
	for _, o := range hitOutcomes {
		c := t.Count(o)
		hits += c
		totalBases += c * o.Bases()
	}
	walks := t.Count(Walk) + t.Count(HitByPitch)
	atBats := n - walks

	t.Summary.OnBasePercentage = float64(hits+walks) / float64(n)
	if atBats > 0 {
		t.Summary.BattingAverage = float64(hits) / float64(atBats)
		t.Summary.SluggingPercentage = float64(totalBases) / float64(atBats)
	}
	return t
}

// ApplyParkFactor moves hits to or from field outs.
// Each hit category, in order 1B, 2B, 3B, HR, is scaled to floor(count*pf).
// Added hits are taken from FO and the category is skipped entirely when FO
// cannot cover it; removed hits always become FO. The total never changes
// and FO never goes negative. A factor of exactly 1 returns counts unchanged.
func ApplyParkFactor(counts [NumOutcomes]int, parkFactor float64) [NumOutcomes]int {
	if parkFactor == 1.0 {
		return counts
	}
	fo := FieldOut.index()
	for _, o := range hitOutcomes {
		i := o.index()
		raw := counts[i]
		delta := int(math.Floor(float64(raw)*parkFactor)) - raw
		switch {
		case delta > 0:
			if counts[fo] >= delta {
				counts[i] += delta
				counts[fo] -= delta
			}
		case delta < 0:
			counts[i] += delta
			counts[fo] -= delta
		}
	}
	return counts
}
