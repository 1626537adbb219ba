package service

import (
	"errors"

	"github.com/xtding233/atbat-sim/internal/atbat"
	"github.com/xtding233/atbat-sim/internal/config"
)

var (
	ErrMissingPlayer  = errors.New("batter and pitcher are required")
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidRole    = errors.New("role must be batter or pitcher")
)

var invalid = []error{
	ErrMissingPlayer,
	ErrInvalidRole,
	atbat.ErrInvalidSampleSize,
	atbat.ErrInvalidParkFactor,
	atbat.ErrInvalidRuns,
	atbat.ErrDegenerateDistribution,
	config.ErrUnknownBallpark,
	config.ErrSampleSizeTooLarge,
	config.ErrTooManyRuns,
}

// IsInvalid reports errors caused by the request itself.
func IsInvalid(err error) bool {
	for _, target := range invalid {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrPlayerNotFound)
}
