package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xtding233/atbat-sim/internal/atbat"
	"github.com/xtding233/atbat-sim/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atbat.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.DefaultSampleSize != 1000 {
		t.Errorf("Expected default sample size 1000, got %d", cfg.Simulation.DefaultSampleSize)
	}
	if cfg.Server.HTTPAddr != ":8050" {
		t.Errorf("Expected default http addr ':8050', got '%s'", cfg.Server.HTTPAddr)
	}
	left, ok := cfg.Ballpark("left")
	if !ok || left.ParkFactor != 0.95 {
		t.Errorf("Expected left cage at 0.95, got %+v", left)
	}
	right, ok := cfg.Ballpark("right")
	if !ok || right.ParkFactor != 1.05 {
		t.Errorf("Expected right cage at 1.05, got %+v", right)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("Redis should be disabled by default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
}

func TestLoadYAMLAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":9999"
roster:
  dir: /srv/roster
  reload_interval: 30s
simulation:
  default_sample_size: 500
  default_ballpark: home
ballparks:
  - key: home
    label: Home Field
    park_factor: 1.1
`)
	t.Setenv("ATBAT_REDIS_ADDR", "localhost:6379")
	t.Setenv("ATBAT_MAX_SAMPLE_SIZE", "20000")
	t.Setenv("ATBAT_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.HTTPAddr != ":9999" {
		t.Errorf("http addr from file not applied: %s", cfg.Server.HTTPAddr)
	}
	if cfg.Server.GRPCAddr != ":9050" {
		t.Errorf("unset keys should keep defaults, got grpc %q", cfg.Server.GRPCAddr)
	}
	if cfg.Roster.Dir != "/srv/roster" || cfg.Roster.ReloadInterval != 30*time.Second {
		t.Errorf("roster config not applied: %+v", cfg.Roster)
	}
	if cfg.Simulation.DefaultSampleSize != 500 || cfg.Simulation.MaxSampleSize != 20000 {
		t.Errorf("simulation config wrong: %+v", cfg.Simulation)
	}
	if len(cfg.Ballparks) != 1 || cfg.Ballparks[0].Key != "home" {
		t.Errorf("ballparks should be replaced by file: %+v", cfg.Ballparks)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("env override not applied: %q", cfg.Redis.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("origins not split: %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoadRejectsBadFile(t *testing.T) {
	if _, err := config.Load(writeConfig(t, "server: [unclosed")); err == nil {
		t.Fatal("malformed yaml must error")
	}
	_, err := config.Load(writeConfig(t, `
simulation:
  default_ballpark: moon
ballparks:
  - key: a
    park_factor: 0
  - key: a
    park_factor: 1
`))
	if err == nil {
		t.Fatal("invalid config must error")
	}
	for _, want := range []string{"park_factor must be > 0", "duplicated", "not a configured ballpark"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestResolve(t *testing.T) {
	cfg := config.Default()
	tests := []struct {
		name    string
		o       config.Overrides
		want    config.SimParams
		wantErr error
	}{
		{
			name: "defaults",
			want: config.SimParams{SampleSize: 1000, ParkFactor: 1.0, Ballpark: "neutral"},
		},
		{
			name: "ballpark",
			o:    config.Overrides{Ballpark: "left", SampleSize: intPtr(250)},
			want: config.SimParams{SampleSize: 250, ParkFactor: 0.95, Ballpark: "left"},
		},
		{
			name: "explicit factor wins over ballpark",
			o:    config.Overrides{Ballpark: "right", ParkFactor: floatPtr(1.2)},
			want: config.SimParams{SampleSize: 1000, ParkFactor: 1.2},
		},
		{
			name: "zero sample size is valid",
			o:    config.Overrides{SampleSize: intPtr(0)},
			want: config.SimParams{SampleSize: 0, ParkFactor: 1.0, Ballpark: "neutral"},
		},
		{name: "unknown ballpark", o: config.Overrides{Ballpark: "moon"}, wantErr: config.ErrUnknownBallpark},
		{name: "negative sample", o: config.Overrides{SampleSize: intPtr(-1)}, wantErr: atbat.ErrInvalidSampleSize},
		{name: "too large", o: config.Overrides{SampleSize: intPtr(10001)}, wantErr: config.ErrSampleSizeTooLarge},
		{name: "bad factor", o: config.Overrides{ParkFactor: floatPtr(0)}, wantErr: atbat.ErrInvalidParkFactor},
		{
			name: "runs ignored outside a series",
			o:    config.Overrides{Runs: intPtr(0)},
			want: config.SimParams{SampleSize: 1000, ParkFactor: 1.0, Ballpark: "neutral"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.Resolve(tt.o)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveSeries(t *testing.T) {
	cfg := config.Default()
	tests := []struct {
		name    string
		o       config.Overrides
		want    config.SimParams
		wantErr error
	}{
		{
			name: "default runs",
			want: config.SimParams{SampleSize: 1000, ParkFactor: 1.0, Ballpark: "neutral", Runs: 100},
		},
		{
			name: "explicit runs",
			o:    config.Overrides{Ballpark: "right", ParkFactor: floatPtr(1.2), Runs: intPtr(5)},
			want: config.SimParams{SampleSize: 1000, ParkFactor: 1.2, Runs: 5},
		},
		{name: "no runs", o: config.Overrides{Runs: intPtr(0)}, wantErr: atbat.ErrInvalidRuns},
		{name: "too many runs", o: config.Overrides{Runs: intPtr(5000)}, wantErr: config.ErrTooManyRuns},
		{name: "sample size still checked", o: config.Overrides{SampleSize: intPtr(-1), Runs: intPtr(5)}, wantErr: atbat.ErrInvalidSampleSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.ResolveSeries(tt.o)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
