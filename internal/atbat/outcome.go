package atbat

import (
	"fmt"
	"strings"
)

// Outcome is the result of one plate appearance.
type Outcome string

const (
	Single     Outcome = "1B"
	Double     Outcome = "2B"
	Triple     Outcome = "3B"
	HomeRun    Outcome = "HR"
	Walk       Outcome = "BB"
	Strikeout  Outcome = "K"
	HitByPitch Outcome = "HBP"
	FieldOut   Outcome = "FO"
)

// Outcomes is the fixed set in distribution order.
var Outcomes = [NumOutcomes]Outcome{Single, Double, Triple, HomeRun, Walk, Strikeout, HitByPitch, FieldOut}

const NumOutcomes = 8

// hitOutcomes are the categories a park factor moves, in adjustment order.
var hitOutcomes = [4]Outcome{Single, Double, Triple, HomeRun}

func (o Outcome) Name() string {
	switch o {
	case Single:
		return "Single"
	case Double:
		return "Double"
	case Triple:
		return "Triple"
	case HomeRun:
		return "Home Run"
	case Walk:
		return "Walk"
	case Strikeout:
		return "Strikeout"
	case HitByPitch:
		return "Hit by Pitch"
	case FieldOut:
		return "Fielded Out"
	default:
		return string(o)
	}
}

// IsHit reports whether o counts toward batting average.
func (o Outcome) IsHit() bool {
	return o.Bases() > 0
}

// Bases is the total-bases value used for slugging.
func (o Outcome) Bases() int {
	switch o {
	case Single:
		return 1
	case Double:
		return 2
	case Triple:
		return 3
	case HomeRun:
		return 4
	default:
		return 0
	}
}

func (o Outcome) index() int {
	for i, c := range Outcomes {
		if c == o {
			return i
		}
	}
	return -1
}

// ParseOutcome accepts a code with or without the trailing "%" used by rate
// fields, e.g. "HR" or "HR%".
func ParseOutcome(s string) (Outcome, error) {
	code := Outcome(strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(s)), "%"))
	if code.index() < 0 {
		return "", fmt.Errorf("unknown outcome %q", s)
	}
	return code, nil
}
