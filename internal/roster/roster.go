package roster

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Roster is an immutable snapshot of batters and pitchers.
// It is passed around explicitly; there is no package-level roster.
type Roster struct {
	players map[Role][]Player
	byID    map[Role]map[string]int
}

// New builds a roster, keeping the given order for name matching.
func New(batters, pitchers []Player) *Roster {
	r := &Roster{
		players: map[Role][]Player{
			Batter:  append([]Player(nil), batters...),
			Pitcher: append([]Player(nil), pitchers...),
		},
		byID: map[Role]map[string]int{},
	}
	for role, ps := range r.players {
		idx := make(map[string]int, len(ps))
		for i, p := range ps {
			idx[strings.ToUpper(p.ID)] = i
		}
		r.byID[role] = idx
	}
	return r
}

func (r *Roster) Len(role Role) int { return len(r.players[role]) }

// Get looks a player up by id, ignoring case.
func (r *Roster) Get(role Role, id string) (Player, bool) {
	i, ok := r.byID[role][strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return Player{}, false
	}
	return r.players[role][i], true
}

// Find resolves a free-form identifier. Tried in order:
//   - player id
//   - name fragment (first match in roster order)
//   - JERSEY_YEAR, e.g. "12_2024"
//   - bare jersey number, most recent season wins
func (r *Roster) Find(role Role, identifier string) (Player, bool) {
	ident := strings.ToUpper(strings.TrimSpace(identifier))
	if ident == "" {
		return Player{}, false
	}
	if p, ok := r.Get(role, ident); ok {
		return p, true
	}
	ps := r.players[role]
	for _, p := range ps {
		if strings.Contains(strings.ToUpper(p.Name), ident) {
			return p, true
		}
	}
	if jersey, year, ok := strings.Cut(ident, "_"); ok && !strings.Contains(year, "_") {
		for _, p := range ps {
			if strconv.Itoa(p.Jersey) == jersey && strconv.Itoa(p.SeasonYear()) == year {
				return p, true
			}
		}
	}
	var best Player
	found := false
	for _, p := range ps {
		if strconv.Itoa(p.Jersey) != ident {
			continue
		}
		if !found || p.SeasonYear() > best.SeasonYear() {
			best, found = p, true
		}
	}
	return best, found
}

// List returns players sorted by jersey. year 0 lists everyone; otherwise
// players from that season and players whose season is unknown.
func (r *Roster) List(role Role, year int) []Player {
	var out []Player
	for _, p := range r.players[role] {
		if year != 0 {
			if y := p.SeasonYear(); y != 0 && y != year {
				continue
			}
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Jersey != out[j].Jersey {
			return out[i].Jersey < out[j].Jersey
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Years lists the known seasons across both roles, ascending.
func (r *Roster) Years() []int {
	seen := map[int]bool{}
	for _, ps := range r.players {
		for _, p := range ps {
			if y := p.SeasonYear(); y != 0 {
				seen[y] = true
			}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Store holds the current roster and lets a reloader swap it.
type Store struct {
	mu sync.RWMutex
	r  *Roster
}

func NewStore(r *Roster) *Store {
	if r == nil {
		r = New(nil, nil)
	}
	return &Store{r: r}
}

func (s *Store) Current() *Roster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *Store) Swap(r *Roster) {
	s.mu.Lock()
	s.r = r
	s.mu.Unlock()
}
