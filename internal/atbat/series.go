package atbat

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

var ErrInvalidRuns = errors.New("invalid run count; must be >= 1")

// SeriesParams describes a batch of independent simulation runs.
type SeriesParams struct {
	Batter  Rates
	Pitcher Rates

	Runs       int     // number of RunTrials calls
	SampleSize int     // plate appearances per run
	ParkFactor float64 // 0 means neutral

	// Seed makes the series replayable: run i uses NewSeededRNG(*Seed + i).
	// nil uses DefaultRNG for every run.
	Seed *uint64

	Workers int // <=0 means GOMAXPROCS
}

// Stats summarizes one rate stat across runs.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// SeriesStats is the spread of rate stats over a series.
type SeriesStats struct {
	Runs       int     `json:"runs"`
	SampleSize int     `json:"sample_size"`
	ParkFactor float64 `json:"park_factor"`
	AVG        Stats   `json:"avg"`
	OBP        Stats   `json:"obp"`
	SLG        Stats   `json:"slg"`
	OPS        Stats   `json:"ops"`
}

// calcStats computes mean/variance/percentiles for samples.
func calcStats(xs []float64) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	// mean
	var sum float64
	for _, v := range xs {
		sum += v
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := v - mean
		acc += d * d
	}
	variance := acc / float64(n)

	// percentiles
	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return cp[0]
		}
		if p >= 1 {
			return cp[n-1]
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return cp[i]
		}
		return cp[i]*(1-f) + cp[i+1]*f
	}

	return Stats{
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		P99:    percentile(0.99),
	}
}

// RunSeries repeats RunTrials p.Runs times in parallel and reports the spread
// of AVG, OBP, SLG and OPS.
//
// Runs share no state: each gets its own random source, and results are
// collected by run index, so a seeded series gives the same answer for any
// worker count. Cancelling ctx stops runs that have not started yet.
func RunSeries(ctx context.Context, p SeriesParams) (SeriesStats, error) {
	if p.Runs <= 0 {
		return SeriesStats{}, ErrInvalidRuns
	}
	if p.ParkFactor == 0 {
		p.ParkFactor = NeutralParkFactor
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	summaries := make([]Summary, p.Runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < p.Runs; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := DefaultRNG()
			if p.Seed != nil {
				rng = NewSeededRNG(*p.Seed + uint64(i))
			}
			t, err := RunTrials(p.Batter, p.Pitcher, p.SampleSize, p.ParkFactor, NewSampler(rng))
			if err != nil {
				return err
			}
			summaries[i] = t.Summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SeriesStats{}, err
	}

	avg := make([]float64, p.Runs)
	obp := make([]float64, p.Runs)
	slg := make([]float64, p.Runs)
	ops := make([]float64, p.Runs)
	for i, s := range summaries {
		avg[i] = s.BattingAverage
		obp[i] = s.OnBasePercentage
		slg[i] = s.SluggingPercentage
		ops[i] = s.OPS()
	}
	return SeriesStats{
		Runs:       p.Runs,
		SampleSize: p.SampleSize,
		ParkFactor: p.ParkFactor,
		AVG:        calcStats(avg),
		OBP:        calcStats(obp),
		SLG:        calcStats(slg),
		OPS:        calcStats(ops),
	}, nil
}
