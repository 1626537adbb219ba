package roster

import (
	"strconv"
	"strings"

	"github.com/xtding233/atbat-sim/internal/atbat"
)

// Role selects the batter or pitcher side of a roster.
type Role string

const (
	Batter  Role = "batter"
	Pitcher Role = "pitcher"
)

// ParseRole accepts "batter"/"pitcher" and their plurals.
func ParseRole(s string) (Role, bool) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "batter":
		return Batter, true
	case "pitcher":
		return Pitcher, true
	}
	return "", false
}

// Player is one season record as stored in batters/pitchers files.
// Rate fields are optional; missing ones fall back to atbat.DefaultRate.
type Player struct {
	ID     string `json:"player_id" yaml:"player_id"`
	Name   string `json:"name" yaml:"name"`
	Jersey int    `json:"jersey" yaml:"jersey"`
	Year   int    `json:"year,omitempty" yaml:"year,omitempty"`

	// batting line
	AVG float64 `json:"avg,omitempty" yaml:"avg,omitempty"`
	OBP float64 `json:"obp,omitempty" yaml:"obp,omitempty"`
	SLG float64 `json:"slg,omitempty" yaml:"slg,omitempty"`
	OPS float64 `json:"ops,omitempty" yaml:"ops,omitempty"`
	PA  int     `json:"pa,omitempty" yaml:"pa,omitempty"`
	HR  int     `json:"hr,omitempty" yaml:"hr,omitempty"`
	RBI int     `json:"rbi,omitempty" yaml:"rbi,omitempty"`

	// pitching line
	ERA  float64 `json:"era,omitempty" yaml:"era,omitempty"`
	WHIP float64 `json:"whip,omitempty" yaml:"whip,omitempty"`
	W    int     `json:"w,omitempty" yaml:"w,omitempty"`
	L    int     `json:"l,omitempty" yaml:"l,omitempty"`
	SO   int     `json:"so,omitempty" yaml:"so,omitempty"`
	IP   float64 `json:"ip,omitempty" yaml:"ip,omitempty"`

	SinglePct     *float64 `json:"1B%,omitempty" yaml:"1B%,omitempty"`
	DoublePct     *float64 `json:"2B%,omitempty" yaml:"2B%,omitempty"`
	TriplePct     *float64 `json:"3B%,omitempty" yaml:"3B%,omitempty"`
	HomeRunPct    *float64 `json:"HR%,omitempty" yaml:"HR%,omitempty"`
	WalkPct       *float64 `json:"BB%,omitempty" yaml:"BB%,omitempty"`
	StrikeoutPct  *float64 `json:"K%,omitempty" yaml:"K%,omitempty"`
	HitByPitchPct *float64 `json:"HBP%,omitempty" yaml:"HBP%,omitempty"`
	FieldOutPct   *float64 `json:"FO%,omitempty" yaml:"FO%,omitempty"`
}

func (p *Player) rateField(o atbat.Outcome) **float64 {
	switch o {
	case atbat.Single:
		return &p.SinglePct
	case atbat.Double:
		return &p.DoublePct
	case atbat.Triple:
		return &p.TriplePct
	case atbat.HomeRun:
		return &p.HomeRunPct
	case atbat.Walk:
		return &p.WalkPct
	case atbat.Strikeout:
		return &p.StrikeoutPct
	case atbat.HitByPitch:
		return &p.HitByPitchPct
	case atbat.FieldOut:
		return &p.FieldOutPct
	}
	return nil
}

// Rates returns the rate fields present on the record.
func (p Player) Rates() atbat.Rates {
	r := make(atbat.Rates, atbat.NumOutcomes)
	for _, o := range atbat.Outcomes {
		if v := *p.rateField(o); v != nil {
			r[o] = *v
		}
	}
	return r
}

// SetRate stores v as the rate for o.
func (p *Player) SetRate(o atbat.Outcome, v float64) {
	if f := p.rateField(o); f != nil {
		*f = &v
	}
}

// SeasonYear is Year, or the year embedded in an id such as "OBR_2024_12".
func (p Player) SeasonYear() int {
	if p.Year != 0 {
		return p.Year
	}
	parts := strings.Split(p.ID, "_")
	if len(parts) < 2 {
		return 0
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return y
}
