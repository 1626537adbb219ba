package roster_test

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xtding233/atbat-sim/internal/atbat"
	"github.com/xtding233/atbat-sim/internal/roster"
)

const battersJSON = `[
  {"player_id": "OBR_2025_12", "name": "Sam Rivera", "jersey": 12, "year": 2025,
   "avg": 0.312, "ops": 0.871, "pa": 140, "hr": 6, "rbi": 28,
   "1B%": 0.18, "2B%": 0.06, "3B%": 0.01, "HR%": 0.04, "BB%": 0.1, "K%": 0.19, "HBP%": 0.02, "FO%": 0.4},
  {"player_id": "OBR_2025_3", "name": "Alex Kim", "jersey": 3, "year": 2025}
]`

const pitchersYAML = `
- player_id: OBR_2025_21
  name: Casey Morgan
  jersey: 21
  year: 2025
  era: 3.12
  whip: 1.18
  w: 5
  l: 2
  so: 61
  ip: 54.2
  "K%": 0.27
  "BB%": 0.08
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoaderReadsJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "batters.json", battersJSON)
	writeFile(t, dir, "pitchers.yaml", pitchersYAML)

	r, err := roster.NewLoader(dir).Load()
	if err != nil {
		t.Fatal(err)
	}
	if r.Len(roster.Batter) != 2 || r.Len(roster.Pitcher) != 1 {
		t.Fatalf("unexpected sizes: %d batters, %d pitchers", r.Len(roster.Batter), r.Len(roster.Pitcher))
	}

	b, ok := r.Get(roster.Batter, "OBR_2025_12")
	if !ok {
		t.Fatal("batter missing")
	}
	if b.AVG != 0.312 || b.Rates()[atbat.FieldOut] != 0.4 || len(b.Rates()) != 8 {
		t.Fatalf("batter decoded wrong: %+v", b)
	}

	p, _ := r.Get(roster.Pitcher, "OBR_2025_21")
	rates := p.Rates()
	if p.ERA != 3.12 || rates[atbat.Strikeout] != 0.27 || len(rates) != 2 {
		t.Fatalf("pitcher decoded wrong: %+v rates=%v", p, rates)
	}
	if rates.Get(atbat.HomeRun) != atbat.DefaultRate {
		t.Fatalf("missing rate should default")
	}
}

func TestLoaderMissingFilesIsEmpty(t *testing.T) {
	r, err := roster.NewLoader(t.TempDir()).Load()
	if err != nil {
		t.Fatal(err)
	}
	if r.Len(roster.Batter) != 0 || r.Len(roster.Pitcher) != 0 {
		t.Fatalf("expected empty roster")
	}
}

func TestLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "batters.json", `{not json`)
	if _, err := roster.NewLoader(dir).Load(); err == nil {
		t.Fatalf("malformed file must error")
	}

	dir = t.TempDir()
	writeFile(t, dir, "batters.json", `[
	  {"player_id": "A", "name": "One", "jersey": 1, "HR%": 1.5},
	  {"player_id": "a", "name": "", "jersey": -2}
	]`)
	_, err := roster.NewLoader(dir).Load()
	if err == nil {
		t.Fatalf("invalid roster must error")
	}
	for _, want := range []string{"HR%", "duplicate player_id", "name is required", "jersey must be >= 0"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestLoaderCacheAndInvalidate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "batters.json", battersJSON)
	l := roster.NewLoader(dir)
	if ps, _ := l.LoadRole(roster.Batter); len(ps) != 2 {
		t.Fatalf("expected 2 batters")
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if ps, _ := l.LoadRole(roster.Batter); len(ps) != 2 {
		t.Fatalf("cached read should still see 2 batters")
	}
	l.Invalidate()
	if ps, _ := l.LoadRole(roster.Batter); len(ps) != 0 {
		t.Fatalf("expected empty after invalidate, got %d", len(ps))
	}
}

func TestFileWatcherPoll(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "batters.json", battersJSON)
	other := filepath.Join(dir, "pitchers.json")

	w := roster.NewFileWatcher([]string{path, other}, time.Second)
	if changed := w.Poll(); len(changed) != 0 {
		t.Fatalf("first poll only primes; got %v", changed)
	}
	if changed := w.Poll(); len(changed) != 0 {
		t.Fatalf("nothing changed; got %v", changed)
	}

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if changed := w.Poll(); len(changed) != 1 || changed[0] != path {
		t.Fatalf("expected %s changed, got %v", path, changed)
	}

	writeFile(t, dir, "pitchers.json", `[]`)
	if changed := w.Poll(); len(changed) != 1 || changed[0] != other {
		t.Fatalf("new file should count as changed, got %v", changed)
	}
}

func TestReloaderKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "batters.json", battersJSON)
	loader := roster.NewLoader(dir)
	first, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}
	store := roster.NewStore(first)
	var logs bytes.Buffer
	r := roster.NewReloader(loader, store, log.New(&logs, "", 0))

	writeFile(t, dir, "batters.json", `[{"player_id": "X", "name": "New Guy", "jersey": 44}]`)
	if err := r.Reload(); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.Current().Get(roster.Batter, "X"); !ok {
		t.Fatalf("reload did not swap roster")
	}

	if err := os.WriteFile(path, []byte(`[{"player_id": ""}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := r.Reload(); err == nil {
		t.Fatalf("invalid roster should fail reload")
	}
	if _, ok := store.Current().Get(roster.Batter, "X"); !ok {
		t.Fatalf("failed reload replaced the roster")
	}
}

func TestSampleDataLoads(t *testing.T) {
	r, err := roster.NewLoader(filepath.Join("..", "..", "data")).Load()
	if err != nil {
		t.Fatalf("sample roster: %v", err)
	}
	if r.Len(roster.Batter) != 4 || r.Len(roster.Pitcher) != 2 {
		t.Fatalf("got %d batters, %d pitchers", r.Len(roster.Batter), r.Len(roster.Pitcher))
	}
	p, ok := r.Find(roster.Pitcher, "34")
	if !ok || p.SeasonYear() != 2024 || p.Rates()[atbat.Strikeout] != 0.19 {
		t.Fatalf("pitcher 34 = %+v", p)
	}
	if b, ok := r.Find(roster.Batter, "27_2025"); !ok || b.Name != "Jordan Lee" {
		t.Fatalf("27_2025 resolved to %+v", b)
	}
}
