// Command atbat simulates a batter/pitcher matchup from the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/xtding233/atbat-sim/internal/cache"
	"github.com/xtding233/atbat-sim/internal/config"
	"github.com/xtding233/atbat-sim/internal/report"
	"github.com/xtding233/atbat-sim/internal/roster"
	"github.com/xtding233/atbat-sim/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (optional)")
		rosterDir  = flag.String("roster", "", "roster directory (default from config)")
		batterID   = flag.String("batter", "", "batter: id, name, jersey or jersey_year")
		pitcherID  = flag.String("pitcher", "", "pitcher: id, name, jersey or jersey_year")
		n          = flag.Int("n", -1, "plate appearances to simulate (negative = config default)")
		park       = flag.Float64("park", 0, "park factor, e.g. 1.05 (0 = use -ballpark)")
		ballpark   = flag.String("ballpark", "", "configured ballpark key")
		seedStr    = flag.String("seed", "", "seed for a reproducible run (empty = random)")
		single     = flag.Bool("single", false, "simulate one at-bat")
		runs       = flag.Int("series", 0, "run a series of this many simulations")
		list       = flag.Bool("list", false, "list players and exit")
		year       = flag.Int("year", 0, "season filter for -list")
		history    = flag.Bool("history", false, "print every simulated outcome")
	)
	flag.Parse()
	log.SetFlags(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *rosterDir != "" {
		cfg.Roster.Dir = *rosterDir
	}

	r, err := roster.NewLoader(cfg.Roster.Dir).Load()
	if err != nil {
		log.Fatalf("roster: %v", err)
	}
	sim := service.New(cfg, roster.NewStore(r), cache.NewMemory(), log.Default())
	out := os.Stdout

	if *list {
		for _, role := range []roster.Role{roster.Batter, roster.Pitcher} {
			players, err := sim.Players(role, *year)
			if err != nil {
				log.Fatal(err)
			}
			if err := report.WritePlayers(out, role, players); err != nil {
				log.Fatal(err)
			}
		}
		return
	}

	if *batterID == "" || *pitcherID == "" {
		fmt.Fprintln(os.Stderr, "both -batter and -pitcher are required (or use -list)")
		flag.Usage()
		os.Exit(2)
	}

	req := service.Request{
		BatterID:  *batterID,
		PitcherID: *pitcherID,
		Overrides: overrides(*n, *runs, *park, *ballpark),
		History:   *history,
	}
	if *seedStr != "" {
		seed, err := strconv.ParseUint(*seedStr, 10, 64)
		if err != nil {
			log.Fatalf("invalid -seed %q", *seedStr)
		}
		req.Seed = &seed
	}

	ctx := context.Background()
	switch {
	case *single:
		res, err := sim.AtBat(ctx, req)
		if err != nil {
			log.Fatal(err)
		}
		check(report.WriteMatchup(out, res.Batter, res.Pitcher))
		check(report.WriteAtBat(out, res.Outcome))
		fmt.Fprintf(out, "Seed: %d\n", res.Seed)

	case *runs > 0:
		rep, err := sim.Series(ctx, req)
		if err != nil {
			log.Fatal(err)
		}
		check(report.WriteMatchup(out, rep.Batter, rep.Pitcher))
		check(report.WriteSeries(out, rep.Stats))
		fmt.Fprintf(out, "Seed: %d\n", rep.Seed)

	default:
		rep, err := sim.Simulate(ctx, req)
		if err != nil {
			log.Fatal(err)
		}
		check(report.WriteMatchup(out, rep.Batter, rep.Pitcher))
		check(report.WriteResults(out, rep.Tally()))
		if *history {
			check(report.WriteHistory(out, rep.History))
		}
		fmt.Fprintf(out, "Seed: %d\n", rep.Seed)
	}
}

// overrides maps CLI flags to config overrides. A negative -n, a zero -park
// and a non-positive -series mean "not set".
func overrides(n, runs int, park float64, ballpark string) config.Overrides {
	o := config.Overrides{Ballpark: ballpark}
	if n >= 0 {
		o.SampleSize = &n
	}
	if park != 0 {
		o.ParkFactor = &park
	}
	if runs > 0 {
		o.Runs = &runs
	}
	return o
}

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
