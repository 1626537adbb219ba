// Package service ties the roster, configuration and result cache to the
// simulation core. The HTTP, gRPC and CLI front ends all go through it.
package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/xtding233/atbat-sim/internal/atbat"
	"github.com/xtding233/atbat-sim/internal/cache"
	"github.com/xtding233/atbat-sim/internal/config"
	"github.com/xtding233/atbat-sim/internal/roster"
)

// Request names a matchup. Ids may be any identifier roster.Find accepts.
type Request struct {
	BatterID  string
	PitcherID string
	Overrides config.Overrides

	// Seed replays a previous run. Without one a fresh seed is drawn and
	// reported back; only runs with a caller-supplied seed are cached.
	Seed *uint64

	// History adds the raw per-trial outcomes (before park adjustment).
	History bool
}

// Report is the result of one Simulate call.
type Report struct {
	RunID        string               `json:"run_id"`
	Batter       roster.Player        `json:"batter"`
	Pitcher      roster.Player        `json:"pitcher"`
	Params       config.SimParams     `json:"params"`
	Seed         uint64               `json:"seed"`
	Distribution atbat.Distribution   `json:"distribution"`
	Outcomes     []atbat.OutcomeCount `json:"outcomes"`
	Summary      atbat.Summary        `json:"summary"`
	OPS          float64              `json:"ops"`
	History      []atbat.Outcome      `json:"history,omitempty"`
	Cached       bool                 `json:"cached"`
}

// AtBatResult is a single plate appearance.
type AtBatResult struct {
	RunID        string             `json:"run_id"`
	Batter       roster.Player      `json:"batter"`
	Pitcher      roster.Player      `json:"pitcher"`
	Seed         uint64             `json:"seed"`
	Outcome      atbat.Outcome      `json:"outcome"`
	Name         string             `json:"name"`
	Distribution atbat.Distribution `json:"distribution"`
}

// SeriesReport is the result of one Series call.
type SeriesReport struct {
	RunID   string            `json:"run_id"`
	Batter  roster.Player     `json:"batter"`
	Pitcher roster.Player     `json:"pitcher"`
	Params  config.SimParams  `json:"params"`
	Seed    uint64            `json:"seed"`
	Stats   atbat.SeriesStats `json:"stats"`
	Cached  bool              `json:"cached"`
}

// Simulator serves simulations against the current roster.
type Simulator struct {
	cfg    *config.Config
	store  *roster.Store
	cache  cache.Cache
	logger *log.Logger

	// Workers bounds Series parallelism; <=0 means GOMAXPROCS.
	Workers int
}

// New creates a Simulator. A nil cache disables caching.
func New(cfg *config.Config, store *roster.Store, c cache.Cache, logger *log.Logger) *Simulator {
	if c == nil {
		c = cache.Nop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Simulator{cfg: cfg, store: store, cache: c, logger: logger}
}

func (s *Simulator) matchup(req Request) (roster.Player, roster.Player, error) {
	if strings.TrimSpace(req.BatterID) == "" || strings.TrimSpace(req.PitcherID) == "" {
		return roster.Player{}, roster.Player{}, ErrMissingPlayer
	}
	r := s.store.Current()
	b, ok := r.Find(roster.Batter, req.BatterID)
	if !ok {
		return roster.Player{}, roster.Player{}, fmt.Errorf("%w: batter %q", ErrPlayerNotFound, req.BatterID)
	}
	p, ok := r.Find(roster.Pitcher, req.PitcherID)
	if !ok {
		return roster.Player{}, roster.Player{}, fmt.Errorf("%w: pitcher %q", ErrPlayerNotFound, req.PitcherID)
	}
	return b, p, nil
}

func seedFor(req Request) uint64 {
	if req.Seed != nil {
		return *req.Seed
	}
	return atbat.NewSeed()
}

func (s *Simulator) cached(ctx context.Context, key string, out any) bool {
	ok, err := cache.GetJSON(ctx, s.cache, key, out)
	if err != nil {
		s.logger.Printf("cache get %s: %v", key, err)
		return false
	}
	return ok
}

func (s *Simulator) remember(ctx context.Context, key string, v any) {
	if err := cache.SetJSON(ctx, s.cache, key, v); err != nil {
		s.logger.Printf("cache set %s: %v", key, err)
	}
}

// Simulate runs params.SampleSize plate appearances for the matchup.
func (s *Simulator) Simulate(ctx context.Context, req Request) (Report, error) {
	batter, pitcher, err := s.matchup(req)
	if err != nil {
		return Report{}, err
	}
	params, err := s.cfg.Resolve(req.Overrides)
	if err != nil {
		return Report{}, err
	}
	seed := seedFor(req)

	var key string
	if req.Seed != nil && !req.History {
		key = cache.Key("sim", batter.ID, pitcher.ID, params.Ballpark, params.SampleSize, 0, params.ParkFactor, seed)
		var rep Report
		if s.cached(ctx, key, &rep) {
			rep.Cached = true
			return rep, nil
		}
	}

	bRates, pRates := batter.Rates(), pitcher.Rates()
	tally, err := atbat.RunTrials(bRates, pRates, params.SampleSize, params.ParkFactor,
		atbat.NewSampler(atbat.NewSeededRNG(seed)))
	if err != nil {
		return Report{}, err
	}
	dist := atbat.BuildDistribution(bRates, pRates)

	rep := Report{
		RunID:        uuid.New().String(),
		Batter:       batter,
		Pitcher:      pitcher,
		Params:       params,
		Seed:         seed,
		Distribution: dist,
		Outcomes:     tally.Breakdown(),
		Summary:      tally.Summary,
		OPS:          tally.Summary.OPS(),
	}
	if req.History {
		// same seed, same draws
		rep.History = atbat.Replay(dist, atbat.NewSampler(atbat.NewSeededRNG(seed)), params.SampleSize)
	}
	if key != "" {
		s.remember(ctx, key, rep)
	}
	return rep, nil
}

// AtBat draws a single outcome for the matchup.
func (s *Simulator) AtBat(ctx context.Context, req Request) (AtBatResult, error) {
	batter, pitcher, err := s.matchup(req)
	if err != nil {
		return AtBatResult{}, err
	}
	dist := atbat.BuildDistribution(batter.Rates(), pitcher.Rates())
	if dist.Degenerate() {
		return AtBatResult{}, atbat.ErrDegenerateDistribution
	}
	seed := seedFor(req)
	o := atbat.SampleOutcome(dist, atbat.NewSampler(atbat.NewSeededRNG(seed)))
	return AtBatResult{
		RunID:        uuid.New().String(),
		Batter:       batter,
		Pitcher:      pitcher,
		Seed:         seed,
		Outcome:      o,
		Name:         o.Name(),
		Distribution: dist,
	}, nil
}

// Series runs params.Runs independent simulations and reports their spread.
func (s *Simulator) Series(ctx context.Context, req Request) (SeriesReport, error) {
	batter, pitcher, err := s.matchup(req)
	if err != nil {
		return SeriesReport{}, err
	}
	params, err := s.cfg.ResolveSeries(req.Overrides)
	if err != nil {
		return SeriesReport{}, err
	}
	seed := seedFor(req)

	var key string
	if req.Seed != nil {
		key = cache.Key("series", batter.ID, pitcher.ID, params.Ballpark, params.SampleSize, params.Runs, params.ParkFactor, seed)
		var rep SeriesReport
		if s.cached(ctx, key, &rep) {
			rep.Cached = true
			return rep, nil
		}
	}

	stats, err := atbat.RunSeries(ctx, atbat.SeriesParams{
		Batter:     batter.Rates(),
		Pitcher:    pitcher.Rates(),
		Runs:       params.Runs,
		SampleSize: params.SampleSize,
		ParkFactor: params.ParkFactor,
		Seed:       &seed,
		Workers:    s.Workers,
	})
	if err != nil {
		return SeriesReport{}, err
	}
	rep := SeriesReport{
		RunID:   uuid.New().String(),
		Batter:  batter,
		Pitcher: pitcher,
		Params:  params,
		Seed:    seed,
		Stats:   stats,
	}
	if key != "" {
		s.remember(ctx, key, rep)
	}
	return rep, nil
}

// Players lists a role for a season. Like the dashboard dropdowns, a season
// with nobody in it falls back to the whole roster.
func (s *Simulator) Players(role roster.Role, year int) ([]roster.Player, error) {
	if role != roster.Batter && role != roster.Pitcher {
		return nil, ErrInvalidRole
	}
	r := s.store.Current()
	ps := r.List(role, year)
	if len(ps) == 0 && year != 0 {
		ps = r.List(role, 0)
	}
	return ps, nil
}

func (s *Simulator) Years() []int {
	return s.store.Current().Years()
}

func (s *Simulator) Ballparks() []config.Ballpark {
	return append([]config.Ballpark(nil), s.cfg.Ballparks...)
}

// Tally rebuilds the outcome tally from the report rows.
func (r Report) Tally() atbat.Tally {
	t := atbat.Tally{Summary: r.Summary}
	for _, row := range r.Outcomes {
		for i, o := range atbat.Outcomes {
			if row.Outcome == o {
				t.Counts[i] = row.Count
			}
		}
	}
	return t
}
