package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/xtding233/atbat-sim/internal/atbat"
)

var (
	ErrUnknownBallpark    = errors.New("unknown ballpark")
	ErrSampleSizeTooLarge = errors.New("sample size exceeds configured maximum")
	ErrTooManyRuns        = errors.New("series runs exceed configured maximum")
)

// Overrides carries per-request settings. Nil/empty means "use the default".
type Overrides struct {
	SampleSize *int
	ParkFactor *float64
	Ballpark   string
	Runs       *int
}

// SimParams are the resolved inputs to a simulation.
type SimParams struct {
	SampleSize int     `json:"sample_size"`
	ParkFactor float64 `json:"park_factor"`
	Ballpark   string  `json:"ballpark,omitempty"` // empty when ParkFactor was given directly
	Runs       int     `json:"runs,omitempty"`
}

// Resolve merges default -> ballpark -> explicit overrides for a single
// simulation. Runs is ignored and left zero; see ResolveSeries.
func (c *Config) Resolve(o Overrides) (SimParams, error) {
	p := SimParams{
		SampleSize: c.Simulation.DefaultSampleSize,
		ParkFactor: atbat.NeutralParkFactor,
		Ballpark:   c.Simulation.DefaultBallpark,
	}
	if p.Ballpark != "" {
		if b, ok := c.Ballpark(p.Ballpark); ok {
			p.ParkFactor = b.ParkFactor
		}
	}

	if o.Ballpark != "" {
		b, ok := c.Ballpark(o.Ballpark)
		if !ok {
			return SimParams{}, fmt.Errorf("%w: %q", ErrUnknownBallpark, o.Ballpark)
		}
		p.Ballpark = b.Key
		p.ParkFactor = b.ParkFactor
	}
	if o.ParkFactor != nil {
		pf := *o.ParkFactor
		if math.IsNaN(pf) || math.IsInf(pf, 0) || pf <= 0 {
			return SimParams{}, atbat.ErrInvalidParkFactor
		}
		p.ParkFactor = pf
		p.Ballpark = ""
	}

	if o.SampleSize != nil {
		p.SampleSize = *o.SampleSize
	}
	if p.SampleSize < 0 {
		return SimParams{}, atbat.ErrInvalidSampleSize
	}
	if p.SampleSize > c.Simulation.MaxSampleSize {
		return SimParams{}, fmt.Errorf("%w: %d > %d", ErrSampleSizeTooLarge, p.SampleSize, c.Simulation.MaxSampleSize)
	}
	return p, nil
}

// ResolveSeries is Resolve plus the series run count.
func (c *Config) ResolveSeries(o Overrides) (SimParams, error) {
	p, err := c.Resolve(o)
	if err != nil {
		return SimParams{}, err
	}
	p.Runs = c.Simulation.DefaultSeriesRuns
	if o.Runs != nil {
		p.Runs = *o.Runs
	}
	if p.Runs <= 0 {
		return SimParams{}, atbat.ErrInvalidRuns
	}
	if p.Runs > c.Simulation.MaxSeriesRuns {
		return SimParams{}, fmt.Errorf("%w: %d > %d", ErrTooManyRuns, p.Runs, c.Simulation.MaxSeriesRuns)
	}
	return p, nil
}
