package config

import (
	"fmt"
	"strings"
)

// Validate checks semantic constraints of a Config.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Server.HTTPAddr) == "" {
		errs = append(errs, "server.http_addr is required")
	}

	sim := c.Simulation
	if sim.MaxSampleSize <= 0 {
		errs = append(errs, "simulation.max_sample_size must be >= 1")
	}
	if sim.DefaultSampleSize < 0 || sim.DefaultSampleSize > sim.MaxSampleSize {
		errs = append(errs, "simulation.default_sample_size must satisfy 0 <= default <= max_sample_size")
	}
	if sim.MaxSeriesRuns <= 0 {
		errs = append(errs, "simulation.max_series_runs must be >= 1")
	}
	if sim.DefaultSeriesRuns <= 0 || sim.DefaultSeriesRuns > sim.MaxSeriesRuns {
		errs = append(errs, "simulation.default_series_runs must satisfy 1 <= default <= max_series_runs")
	}

	seen := map[string]bool{}
	for i, b := range c.Ballparks {
		if b.Key == "" {
			errs = append(errs, fmt.Sprintf("ballparks[%d].key is required", i))
		} else if seen[b.Key] {
			errs = append(errs, fmt.Sprintf("ballparks[%d].key %q is duplicated", i, b.Key))
		}
		seen[b.Key] = true
		if !(b.ParkFactor > 0) {
			errs = append(errs, fmt.Sprintf("ballparks[%d].park_factor must be > 0", i))
		}
	}
	if sim.DefaultBallpark != "" && !seen[sim.DefaultBallpark] {
		errs = append(errs, fmt.Sprintf("simulation.default_ballpark %q is not a configured ballpark", sim.DefaultBallpark))
	}

	if c.Redis.TTL < 0 {
		errs = append(errs, "redis.ttl must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
