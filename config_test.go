package nodewire

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Logger == nil {
		t.Error("default Logger is nil")
	}
	if cfg.ActivationBudget <= 0 {
		t.Errorf("ActivationBudget = %d, want positive", cfg.ActivationBudget)
	}
	if cfg.DirectionFallback == nil {
		t.Error("default DirectionFallback is nil")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ActivationBudget = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative budget accepted")
	}
}

func TestParseConfig(t *testing.T) {
	src := `
debug              = true
log_level          = "debug"
activation_budget  = 0
direction_fallback = "forward"
`
	cfg, err := ParseConfig("engine.hcl", []byte(src))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if !cfg.Debug {
		t.Error("Debug = false")
	}
	if cfg.ActivationBudget != 0 {
		t.Errorf("ActivationBudget = %d, want 0", cfg.ActivationBudget)
	}
	if !cfg.Logger.IsDebug() {
		t.Error("logger not at debug level")
	}
	if got := cfg.DirectionFallback(); got != (Vec2{X: 1}) {
		t.Errorf("fallback = %v, want {1 0}", got)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig("empty.hcl", nil)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.ActivationBudget != DefaultConfig().ActivationBudget {
		t.Errorf("ActivationBudget = %d", cfg.ActivationBudget)
	}
	if cfg.Debug {
		t.Error("Debug = true")
	}
	if cfg.DirectionFallback == nil {
		t.Error("DirectionFallback = nil")
	}
}

func TestParseConfigNoFallback(t *testing.T) {
	cfg, err := ParseConfig("engine.hcl", []byte(`direction_fallback = "none"`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.DirectionFallback != nil {
		t.Error("DirectionFallback set for \"none\"")
	}
}

func TestParseConfigSeedIsDeterministic(t *testing.T) {
	src := []byte(`seed = 42`)
	a, err := ParseConfig("a.hcl", src)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseConfig("b.hcl", src)
	if err != nil {
		t.Fatal(err)
	}
	for range 5 {
		if da, db := a.DirectionFallback(), b.DirectionFallback(); da != db {
			t.Fatalf("seeded fallbacks diverged: %v != %v", da, db)
		}
	}
}

func TestParseConfigJSON(t *testing.T) {
	cfg, err := ParseConfig("engine.json", []byte(`{"activation_budget": 12}`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.ActivationBudget != 12 {
		t.Errorf("ActivationBudget = %d, want 12", cfg.ActivationBudget)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `debug = `, "parse config"},
		{"unknown attribute", `speed = 3`, "parse config"},
		{"bad level", `log_level = "loud"`, "unknown log_level"},
		{"bad fallback", `direction_fallback = "up"`, "direction_fallback"},
		{"negative budget", `activation_budget = -5`, "negative"},
		{"two problems", "log_level = \"loud\"\ndirection_fallback = \"up\"", "2 errors"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("engine.hcl", []byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodewire.hcl")
	if err := os.WriteFile(path, []byte(`activation_budget = 64`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.ActivationBudget != 64 {
		t.Errorf("ActivationBudget = %d, want 64", cfg.ActivationBudget)
	}

	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.hcl")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestConfigNilLoggerDiscards(t *testing.T) {
	var cfg Config
	if cfg.logger() == nil {
		t.Fatal("logger() = nil")
	}
	// Must not panic.
	NewEngine(NewGraph(), cfg).Tick()
}
