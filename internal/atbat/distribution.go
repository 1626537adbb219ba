package atbat

// DefaultRate is used for any rate a player record leaves out: an even
// 1-in-8 share.
const DefaultRate = 1.0 / NumOutcomes

// Rates maps an outcome to a player's historical rate for it.
// Only these eight fields are read from a player record.
type Rates map[Outcome]float64

// Get returns the stored rate for o, or DefaultRate when absent.
func (r Rates) Get(o Outcome) float64 {
	if v, ok := r[o]; ok {
		return v
	}
	return DefaultRate
}

// Weighted is one entry of a Distribution.
type Weighted struct {
	Outcome Outcome `json:"outcome"`
	Prob    float64 `json:"prob"`
}

// Distribution covers all outcomes in Outcomes order.
type Distribution []Weighted

// BuildDistribution averages the batter's and pitcher's rate for each outcome
// and normalizes the result to sum to 1.
// If every weight is zero the weights are returned as is; see Degenerate.
func BuildDistribution(batter, pitcher Rates) Distribution {
	d := make(Distribution, NumOutcomes)
	var total float64
	for i, o := range Outcomes {
		w := (batter.Get(o) + pitcher.Get(o)) / 2
		d[i] = Weighted{Outcome: o, Prob: w}
		total += w
	}
	if total == 0 {
		return d
	}
	for i := range d {
		d[i].Prob /= total
	}
	return d
}

// Degenerate reports a distribution with no weight to draw from.
func (d Distribution) Degenerate() bool {
	var total float64
	for _, w := range d {
		total += w.Prob
	}
	return total == 0
}

// Weights returns the probabilities in order, for a Sampler.
func (d Distribution) Weights() []float64 {
	ws := make([]float64, len(d))
	for i, w := range d {
		ws[i] = w.Prob
	}
	return ws
}

// Prob returns the weight assigned to o.
func (d Distribution) Prob(o Outcome) float64 {
	for _, w := range d {
		if w.Outcome == o {
			return w.Prob
		}
	}
	return 0
}

// SampleOutcome draws one outcome from d.
// It consumes exactly one draw from s.
func SampleOutcome(d Distribution, s Sampler) Outcome {
	return d.sample(d.Weights(), s)
}

func (d Distribution) sample(weights []float64, s Sampler) Outcome {
	i := s.SampleIndex(weights)
	if i < 0 || i >= len(d) {
		return FieldOut
	}
	return d[i].Outcome
}

// Replay draws n outcomes and keeps every one of them.
// RunTrials only keeps counts; this is for callers that want the per-trial history.
func Replay(d Distribution, s Sampler, n int) []Outcome {
	if n <= 0 {
		return nil
	}
	weights := d.Weights()
	out := make([]Outcome, n)
	for i := range out {
		out[i] = d.sample(weights, s)
	}
	return out
}
