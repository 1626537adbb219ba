package roster

import (
	"fmt"
	"strings"

	"github.com/xtding233/atbat-sim/internal/atbat"
)

// ValidatePlayers checks a role's records and reports every problem at once.
func ValidatePlayers(role Role, players []Player) error {
	var errs []string
	seen := make(map[string]bool, len(players))

	for i, p := range players {
		label := fmt.Sprintf("%ss[%d]", role, i)
		id := strings.ToUpper(strings.TrimSpace(p.ID))
		if id == "" {
			errs = append(errs, label+": player_id is required")
		} else {
			label = fmt.Sprintf("%ss[%s]", role, p.ID)
			if seen[id] {
				errs = append(errs, label+": duplicate player_id")
			}
			seen[id] = true
		}
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, label+": name is required")
		}
		if p.Jersey < 0 {
			errs = append(errs, label+": jersey must be >= 0")
		}
		if err := atbat.ValidateRates(p.Rates()); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", label, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("roster validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
