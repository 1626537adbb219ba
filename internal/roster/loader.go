package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var extensions = []string{".json", ".yaml", ".yml"}

// Paths helper for batter/pitcher files.
type Paths struct {
	BaseDir string // e.g. ./data
}

func fileBase(role Role) string {
	return string(role) + "s"
}

// Candidates lists every file a role may be read from, in lookup order.
func (p Paths) Candidates(role Role) []string {
	out := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		out = append(out, filepath.Join(p.BaseDir, fileBase(role)+ext))
	}
	return out
}

// All lists candidates for both roles; used by the watcher.
func (p Paths) All() []string {
	return append(p.Candidates(Batter), p.Candidates(Pitcher)...)
}

// Loader reads roster files and caches them per role.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[Role][]Player
}

// NewLoader creates a roster loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[Role][]Player),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// LoadRole reads the first existing file for role.
// No file at all is an empty list, not an error.
func (l *Loader) LoadRole(role Role) ([]Player, error) {
	l.mu.RLock()
	if ps, ok := l.cache[role]; ok {
		l.mu.RUnlock()
		return ps, nil
	}
	l.mu.RUnlock()

	var players []Player
	for _, path := range l.paths.Candidates(role) {
		ps, found, err := readPlayers(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if found {
			players = ps
			break
		}
	}

	l.mu.Lock()
	l.cache[role] = players
	l.mu.Unlock()
	return players, nil
}

// Load reads and validates both roles and builds a Roster.
func (l *Loader) Load() (*Roster, error) {
	batters, err := l.LoadRole(Batter)
	if err != nil {
		return nil, err
	}
	pitchers, err := l.LoadRole(Pitcher)
	if err != nil {
		return nil, err
	}
	if err := ValidatePlayers(Batter, batters); err != nil {
		return nil, err
	}
	if err := ValidatePlayers(Pitcher, pitchers); err != nil {
		return nil, err
	}
	return New(batters, pitchers), nil
}

// Invalidate clears the loader's cache. Call after the watcher detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[Role][]Player)
}

// readPlayers decodes a JSON or YAML list of players.
func readPlayers(path string) ([]Player, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var players []Player
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &players)
	default:
		err = json.Unmarshal(b, &players)
	}
	if err != nil {
		return nil, true, err
	}
	return players, true, nil
}
