// Package report renders simulation results as terminal text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/xtding233/atbat-sim/internal/atbat"
	"github.com/xtding233/atbat-sim/internal/roster"
)

const rule = "============================================================"

// printer writes through a tabwriter and keeps the first error.
type printer struct {
	tw  *tabwriter.Writer
	err error
}

func newPrinter(w io.Writer) *printer {
	return &printer{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.tw, format, args...)
}

func (p *printer) flush() error {
	if p.err != nil {
		return p.err
	}
	return p.tw.Flush()
}

func season(pl roster.Player) string {
	if y := pl.SeasonYear(); y != 0 {
		return strconv.Itoa(y)
	}
	return "Unknown"
}

// WriteMatchup prints both players' season lines.
func WriteMatchup(w io.Writer, batter, pitcher roster.Player) error {
	p := newPrinter(w)
	p.printf("%s\n", rule)
	p.printf("MATCHUP: %s (#%d) vs %s (#%d)\n", batter.Name, batter.Jersey, pitcher.Name, pitcher.Jersey)
	p.printf("%s\n", rule)
	p.printf("Batter: %s - %s Season\n", batter.Name, season(batter))
	p.printf("  AVG: %.3f | OPS: %.3f | PA: %d | HR: %d | RBI: %d\n", batter.AVG, batter.OPS, batter.PA, batter.HR, batter.RBI)
	p.printf("Pitcher: %s - %s Season\n", pitcher.Name, season(pitcher))
	p.printf("  ERA: %.2f | WHIP: %.2f | W-L: %d-%d | K: %d | IP: %.1f\n", pitcher.ERA, pitcher.WHIP, pitcher.W, pitcher.L, pitcher.SO, pitcher.IP)
	return p.flush()
}

// WriteResults prints the outcome table followed by the rate stats.
func WriteResults(w io.Writer, t atbat.Tally) error {
	p := newPrinter(w)
	p.printf("Simulation Results (%d at-bats)\n", t.Summary.SampleSize)
	p.printf("Outcome\tCount\tPct\n")
	for _, row := range t.Breakdown() {
		p.printf("%s\t%d\t%.1f%%\n", row.Name, row.Count, row.Fraction*100)
	}
	p.printf("\n")
	p.printf("AVG\t%.3f\n", t.Summary.BattingAverage)
	p.printf("OBP\t%.3f\n", t.Summary.OnBasePercentage)
	p.printf("SLG\t%.3f\n", t.Summary.SluggingPercentage)
	p.printf("OPS\t%.3f\n", t.Summary.OPS())
	if pf := t.Summary.ParkFactor; pf != 0 && pf != atbat.NeutralParkFactor {
		p.printf("Park factor: %.2f\n", pf)
	}
	return p.flush()
}

// WriteSeries prints the spread of each rate stat over a series.
func WriteSeries(w io.Writer, s atbat.SeriesStats) error {
	p := newPrinter(w)
	p.printf("Series: %d runs x %d at-bats, park factor %.2f\n", s.Runs, s.SampleSize, s.ParkFactor)
	p.printf("Stat\tMean\tStdDev\tP50\tP90\tP99\n")
	for _, row := range []struct {
		name string
		st   atbat.Stats
	}{{"AVG", s.AVG}, {"OBP", s.OBP}, {"SLG", s.SLG}, {"OPS", s.OPS}} {
		p.printf("%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n", row.name, row.st.Mean, row.st.StdDev, row.st.P50, row.st.P90, row.st.P99)
	}
	return p.flush()
}

// WritePlayers lists one role. Batters show AVG, pitchers ERA.
func WritePlayers(w io.Writer, role roster.Role, players []roster.Player) error {
	p := newPrinter(w)
	title := "Batters"
	if role == roster.Pitcher {
		title = "Pitchers"
	}
	p.printf("%s (%d):\n", title, len(players))
	for _, pl := range players {
		stat := fmt.Sprintf("AVG: %.3f", pl.AVG)
		if role == roster.Pitcher {
			stat = fmt.Sprintf("ERA: %.2f", pl.ERA)
		}
		p.printf("  #%d\t%s\t(%s)\t%s\n", pl.Jersey, pl.Name, season(pl), stat)
	}
	return p.flush()
}

// WriteAtBat prints a single outcome.
func WriteAtBat(w io.Writer, o atbat.Outcome) error {
	_, err := fmt.Fprintf(w, "Result: %s!\n", o.Name())
	return err
}

// historyLine is the number of outcome codes per line.
const historyLine = 20

// WriteHistory prints raw per-trial outcome codes.
func WriteHistory(w io.Writer, outcomes []atbat.Outcome) error {
	p := newPrinter(w)
	p.printf("History (%d):\n", len(outcomes))
	codes := make([]string, 0, historyLine)
	for i, o := range outcomes {
		codes = append(codes, string(o))
		if len(codes) == historyLine || i == len(outcomes)-1 {
			p.printf("  %s\n", strings.Join(codes, " "))
			codes = codes[:0]
		}
	}
	return p.flush()
}
