package atbat

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidRate            = errors.New("invalid rate; must be 0..1")
	ErrInvalidSampleSize      = errors.New("invalid sample size; must be >= 0")
	ErrInvalidParkFactor      = errors.New("invalid park factor; must be > 0")
	ErrDegenerateDistribution = errors.New("matchup has no outcome weight")
)

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidRate
	}
	if p < 0 || p > 1 {
		return ErrInvalidRate
	}
	return nil
}

// ValidateRates checks every present rate. The simulator itself does not
// validate; loaders call this before handing records over.
func ValidateRates(r Rates) error {
	for _, o := range Outcomes {
		v, ok := r[o]
		if !ok {
			continue
		}
		if err := validateProb(v); err != nil {
			return fmt.Errorf("%s%%=%v: %w", o, v, err)
		}
	}
	return nil
}

func validateParkFactor(pf float64) error {
	if math.IsNaN(pf) || math.IsInf(pf, 0) || pf <= 0 {
		return ErrInvalidParkFactor
	}
	return nil
}
