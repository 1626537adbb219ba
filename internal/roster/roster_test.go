package roster_test

import (
	"testing"

	"github.com/xtding233/atbat-sim/internal/atbat"
	"github.com/xtding233/atbat-sim/internal/roster"
)

func samplePlayers() ([]roster.Player, []roster.Player) {
	batters := []roster.Player{
		{ID: "OBR_2024_12", Name: "Sam Rivera", Jersey: 12, Year: 2024},
		{ID: "OBR_2025_12", Name: "Sam Rivera", Jersey: 12, Year: 2025},
		{ID: "OBR_2023_7", Name: "Jordan Lee", Jersey: 7},
		{ID: "OBR_2025_3", Name: "Alex Kim", Jersey: 3, Year: 2025},
	}
	pitchers := []roster.Player{
		{ID: "OBR_2025_21", Name: "Casey Morgan", Jersey: 21, Year: 2025},
		{ID: "P-NOYEAR", Name: "Drew Patel", Jersey: 30},
	}
	return batters, pitchers
}

func TestFind(t *testing.T) {
	r := roster.New(samplePlayers())
	tests := []struct {
		name   string
		role   roster.Role
		ident  string
		wantID string
	}{
		{"exact id", roster.Batter, "obr_2024_12", "OBR_2024_12"},
		{"name fragment", roster.Batter, "lee", "OBR_2023_7"},
		{"name fragment first in order", roster.Batter, "rivera", "OBR_2024_12"},
		{"jersey and year", roster.Batter, "12_2024", "OBR_2024_12"},
		{"jersey and year from id", roster.Batter, "7_2023", "OBR_2023_7"},
		{"jersey most recent", roster.Batter, "12", "OBR_2025_12"},
		{"pitcher by jersey", roster.Pitcher, "30", "P-NOYEAR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := r.Find(tt.role, tt.ident)
			if !ok {
				t.Fatalf("%q not found", tt.ident)
			}
			if p.ID != tt.wantID {
				t.Fatalf("got %s, want %s", p.ID, tt.wantID)
			}
		})
	}

	for _, miss := range []string{"", "99", "12_1999", "nobody"} {
		if p, ok := r.Find(roster.Batter, miss); ok {
			t.Errorf("%q should not resolve, got %s", miss, p.ID)
		}
	}
	if _, ok := r.Find(roster.Pitcher, "rivera"); ok {
		t.Errorf("batters must not resolve as pitchers")
	}
}

func TestListAndYears(t *testing.T) {
	r := roster.New(samplePlayers())

	all := r.List(roster.Batter, 0)
	if len(all) != 4 {
		t.Fatalf("expected 4 batters, got %d", len(all))
	}
	if all[0].Jersey != 3 || all[1].Jersey != 7 || all[3].Jersey != 12 {
		t.Fatalf("not sorted by jersey: %+v", all)
	}

	y2025 := r.List(roster.Batter, 2025)
	if len(y2025) != 2 {
		t.Fatalf("expected 2 batters for 2025, got %+v", y2025)
	}
	// unknown season is always listed
	if ps := r.List(roster.Pitcher, 2024); len(ps) != 1 || ps[0].ID != "P-NOYEAR" {
		t.Fatalf("unexpected 2024 pitchers: %+v", ps)
	}

	years := r.Years()
	if len(years) != 3 || years[0] != 2023 || years[2] != 2025 {
		t.Fatalf("unexpected years %v", years)
	}
}

func TestPlayerRates(t *testing.T) {
	var p roster.Player
	if len(p.Rates()) != 0 {
		t.Fatalf("no rate fields should give empty rates")
	}
	p.SetRate(atbat.HomeRun, 0.07)
	p.SetRate(atbat.Strikeout, 0.2)
	r := p.Rates()
	if len(r) != 2 || r[atbat.HomeRun] != 0.07 || r.Get(atbat.Single) != atbat.DefaultRate {
		t.Fatalf("unexpected rates %v", r)
	}
}

func TestSeasonYear(t *testing.T) {
	tests := []struct {
		p    roster.Player
		want int
	}{
		{roster.Player{Year: 2023, ID: "OBR_2025_1"}, 2023},
		{roster.Player{ID: "OBR_2025_1"}, 2025},
		{roster.Player{ID: "nounderscore"}, 0},
		{roster.Player{ID: "OBR_xx_1"}, 0},
	}
	for _, tt := range tests {
		if got := tt.p.SeasonYear(); got != tt.want {
			t.Errorf("%+v: got %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	for in, want := range map[string]roster.Role{"batter": roster.Batter, "Pitchers": roster.Pitcher} {
		if got, ok := roster.ParseRole(in); !ok || got != want {
			t.Errorf("ParseRole(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := roster.ParseRole("umpire"); ok {
		t.Errorf("umpire is not a role")
	}
}

func TestStoreSwap(t *testing.T) {
	s := roster.NewStore(nil)
	if s.Current().Len(roster.Batter) != 0 {
		t.Fatalf("nil roster should start empty")
	}
	s.Swap(roster.New(samplePlayers()))
	if s.Current().Len(roster.Batter) != 4 {
		t.Fatalf("swap not visible")
	}
}
