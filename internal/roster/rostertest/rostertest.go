// Package rostertest provides a small fixed roster for tests.
package rostertest

import (
	"github.com/xtding233/atbat-sim/internal/atbat"
	"github.com/xtding233/atbat-sim/internal/roster"
)

func rates(p *roster.Player, r atbat.Rates) {
	for o, v := range r {
		p.SetRate(o, v)
	}
}

// Batters returns two seasons of one slugger, a contact hitter with no rate
// fields at all and a batter whose rates are all zero.
func Batters() []roster.Player {
	slugger2024 := roster.Player{ID: "OBR_2024_12", Name: "Sam Rivera", Jersey: 12, Year: 2024, AVG: 0.281, OBP: 0.350, SLG: 0.470, OPS: 0.820}
	rates(&slugger2024, atbat.Rates{
		atbat.Single: 0.14, atbat.Double: 0.05, atbat.Triple: 0.01, atbat.HomeRun: 0.04,
		atbat.Walk: 0.09, atbat.Strikeout: 0.22, atbat.HitByPitch: 0.01, atbat.FieldOut: 0.44,
	})
	slugger2025 := roster.Player{ID: "OBR_2025_12", Name: "Sam Rivera", Jersey: 12, Year: 2025, AVG: 0.295, OBP: 0.371, SLG: 0.512, OPS: 0.883}
	rates(&slugger2025, atbat.Rates{
		atbat.Single: 0.15, atbat.Double: 0.06, atbat.Triple: 0.01, atbat.HomeRun: 0.05,
		atbat.Walk: 0.10, atbat.Strikeout: 0.20, atbat.HitByPitch: 0.01, atbat.FieldOut: 0.42,
	})
	contact := roster.Player{ID: "OBR_2025_3", Name: "Alex Kim", Jersey: 3, Year: 2025}
	blank := roster.Player{ID: "OBR_2025_98", Name: "Nobody Swings", Jersey: 98, Year: 2025}
	for _, o := range atbat.Outcomes {
		blank.SetRate(o, 0)
	}
	return []roster.Player{slugger2024, slugger2025, contact, blank}
}

// Pitchers returns an ace and a pitcher whose rates are all zero. Paired
// with the zero batter it gives a distribution with nothing to draw.
func Pitchers() []roster.Player {
	ace := roster.Player{ID: "OBR_2025_21", Name: "Casey Morgan", Jersey: 21, Year: 2025, ERA: 2.85, WHIP: 1.05}
	rates(&ace, atbat.Rates{
		atbat.Single: 0.13, atbat.Double: 0.04, atbat.Triple: 0.005, atbat.HomeRun: 0.025,
		atbat.Walk: 0.07, atbat.Strikeout: 0.28, atbat.HitByPitch: 0.01, atbat.FieldOut: 0.44,
	})
	blank := roster.Player{ID: "OBR_2025_99", Name: "Zero Zed", Jersey: 99, Year: 2025}
	for _, o := range atbat.Outcomes {
		blank.SetRate(o, 0)
	}
	return []roster.Player{ace, blank}
}

// Store returns a store holding Batters and Pitchers.
func Store() *roster.Store {
	return roster.NewStore(roster.New(Batters(), Pitchers()))
}
