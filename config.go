package nodewire

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// DirectionFallback supplies a direction for a spawn effect whose payload has
// none. A nil DirectionFallback leaves the direction absent and the consumer
// decides.
type DirectionFallback func() Vec2

// RandomDirection returns a fallback that picks a uniformly random unit
// vector. If r is nil the package-level generator is used.
func RandomDirection(r *rand.Rand) DirectionFallback {
	return func() Vec2 {
		var f float64
		if r != nil {
			f = r.Float64()
		} else {
			f = rand.Float64()
		}
		return Vec2FromAngle(f * 2 * math.Pi)
	}
}

// FixedDirection returns a fallback that always yields dir.
func FixedDirection(dir Vec2) DirectionFallback {
	return func() Vec2 { return dir }
}

// Config holds engine settings. Start from DefaultConfig and override fields.
type Config struct {
	// Logger receives diagnostics. Defaults to a "nodewire" logger on stderr
	// at warn level.
	Logger hclog.Logger

	// Debug turns programming-invariant violations (an activation reaching a
	// kind the interpreter does not know) into panics.
	Debug bool

	// ActivationBudget is the number of activations a single tick may deliver
	// before a warning is logged. Zero disables the check. Work over budget
	// is still processed.
	ActivationBudget int

	// DirectionFallback resolves a missing direction on spawn effects.
	DirectionFallback DirectionFallback
}

// DefaultConfig returns the settings used by the example game.
func DefaultConfig() Config {
	return Config{
		Logger:            newLogger(hclog.Warn),
		ActivationBudget:  1024,
		DirectionFallback: RandomDirection(nil),
	}
}

func newLogger(level hclog.Level) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "nodewire",
		Level:  level,
		Output: os.Stderr,
	})
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var result *multierror.Error
	if c.ActivationBudget < 0 {
		result = multierror.Append(result, fmt.Errorf("activation budget %d is negative", c.ActivationBudget))
	}
	return result.ErrorOrNil()
}

func (c Config) logger() hclog.Logger {
	if c.Logger == nil {
		return hclog.NewNullLogger()
	}
	return c.Logger
}

// --- Config files ---

// fileConfig is the HCL shape of a config file:
//
//	debug              = true
//	log_level          = "debug"
//	activation_budget  = 256
//	direction_fallback = "random" # "random", "forward" or "none"
//	seed               = 42       # 0 seeds from the runtime
type fileConfig struct {
	Debug             bool   `hcl:"debug,optional"`
	LogLevel          string `hcl:"log_level,optional"`
	ActivationBudget  *int   `hcl:"activation_budget,optional"`
	DirectionFallback string `hcl:"direction_fallback,optional"`
	Seed              int64  `hcl:"seed,optional"`
}

// LoadConfigFile reads an HCL (or HCL JSON, by .json extension) config file
// and applies it on top of DefaultConfig.
func LoadConfigFile(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("nodewire: read config: %w", err)
	}
	return ParseConfig(path, src)
}

// ParseConfig decodes config source. filename selects the syntax by
// extension and is used in diagnostics.
func ParseConfig(filename string, src []byte) (Config, error) {
	var fc fileConfig
	if err := hclsimple.Decode(filename, src, nil, &fc); err != nil {
		return Config{}, fmt.Errorf("nodewire: parse config: %w", err)
	}
	cfg, err := fc.apply(DefaultConfig())
	if err != nil {
		return Config{}, fmt.Errorf("nodewire: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("nodewire: parse config: %w", err)
	}
	return cfg, nil
}

func (fc fileConfig) apply(cfg Config) (Config, error) {
	var result *multierror.Error

	cfg.Debug = fc.Debug
	if fc.ActivationBudget != nil {
		cfg.ActivationBudget = *fc.ActivationBudget
	}

	if fc.LogLevel != "" {
		level := hclog.LevelFromString(fc.LogLevel)
		if level == hclog.NoLevel {
			result = multierror.Append(result, fmt.Errorf("unknown log_level %q", fc.LogLevel))
		} else {
			cfg.Logger = newLogger(level)
		}
	}

	var r *rand.Rand
	if fc.Seed != 0 {
		r = rand.New(rand.NewPCG(uint64(fc.Seed), uint64(fc.Seed)))
	}
	switch strings.ToLower(fc.DirectionFallback) {
	case "", "random":
		cfg.DirectionFallback = RandomDirection(r)
	case "forward":
		cfg.DirectionFallback = FixedDirection(Vec2{X: 1})
	case "none":
		cfg.DirectionFallback = nil
	default:
		result = multierror.Append(result, errors.New("direction_fallback must be \"random\", \"forward\" or \"none\""))
	}

	return cfg, result.ErrorOrNil()
}
