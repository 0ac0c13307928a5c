// Package config loads balloon gallery settings from the environment, an
// optional .env file and an optional YAML file with field tuning.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/balloons"
)

// Store backends.
const (
	StoreSupabase = "supabase"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds every setting the CLI and gallery read.
type Config struct {
	Store       string `env:"BALLOONS_STORE,default=supabase"`
	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_ANON_KEY"`
	DatabaseURL string `env:"DATABASE_URL"`

	// RateLimit is sends per second; zero disables limiting.
	RateLimit float64 `env:"BALLOONS_RATE_LIMIT,default=1"`
	RateBurst int     `env:"BALLOONS_RATE_BURST,default=3"`
	PageSize  int     `env:"BALLOONS_PAGE_SIZE,default=200"`

	Debug bool `env:"BALLOONS_DEBUG"`

	// FieldFile names a YAML file whose keys override Field.
	FieldFile string `env:"BALLOONS_FIELD_FILE"`
	Field     Field
}

// Field is the serializable form of balloons.FieldConfig.
type Field struct {
	Scope        float64 `yaml:"scope" env:"BALLOONS_SCOPE,default=2"`
	MinDistance  float64 `yaml:"min_distance" env:"BALLOONS_MIN_DISTANCE,default=1.5"`
	InitialY     float64 `yaml:"initial_y" env:"BALLOONS_INITIAL_Y,default=-10"`
	Smoothing    float64 `yaml:"smoothing" env:"BALLOONS_SMOOTHING,default=0.02"`
	Epsilon      float64 `yaml:"epsilon" env:"BALLOONS_EPSILON,default=0.001"`
	VisibleCount int     `yaml:"visible_count" env:"BALLOONS_VISIBLE_COUNT,default=10"`
	Strategy     string  `yaml:"strategy" env:"BALLOONS_STRATEGY,default=window"`
}

// Load reads envFiles (".env" when none are given) into the process
// environment, decodes the environment, applies FieldFile and validates the
// result. Missing env files are skipped.
func Load(envFiles ...string) (*Config, error) {
	cfg, err := Decode(envFiles...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode is Load without validation, for callers that adjust the result
// before calling Validate.
func Decode(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "config: load %s", name)
		}
	}

	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, errors.Wrap(err, "config: decode environment")
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))

	if cfg.FieldFile != "" {
		if err := cfg.Field.ReadFile(cfg.FieldFile); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// ReadFile overrides the fields named in a YAML file.
func (f *Field) ReadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "config: read field file")
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return errors.Wrapf(err, "config: parse %s", path)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	switch c.Store {
	case StoreSupabase:
		if c.SupabaseURL == "" {
			err = multierr.Append(err, errors.New("SUPABASE_URL is required for the supabase store"))
		}
		if c.SupabaseKey == "" {
			err = multierr.Append(err, errors.New("SUPABASE_ANON_KEY is required for the supabase store"))
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			err = multierr.Append(err, errors.New("DATABASE_URL is required for the postgres store"))
		}
	case StoreMemory:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown store %q", c.Store))
	}
	if c.RateLimit < 0 {
		err = multierr.Append(err, fmt.Errorf("rate limit %v is negative", c.RateLimit))
	}
	if c.PageSize < 0 {
		err = multierr.Append(err, fmt.Errorf("page size %d is negative", c.PageSize))
	}
	err = multierr.Append(err, c.Field.Validate())
	if err != nil {
		return errors.Wrap(err, "config")
	}
	return nil
}

// Validate checks the field tuning.
func (f Field) Validate() error {
	var err error
	if f.Scope <= 0 {
		err = multierr.Append(err, fmt.Errorf("scope %v must be positive", f.Scope))
	}
	if f.MinDistance <= 0 {
		err = multierr.Append(err, fmt.Errorf("min distance %v must be positive", f.MinDistance))
	}
	if f.Smoothing <= 0 || f.Smoothing >= 1 {
		err = multierr.Append(err, fmt.Errorf("smoothing %v must be in (0, 1)", f.Smoothing))
	}
	if f.Epsilon <= 0 {
		err = multierr.Append(err, fmt.Errorf("epsilon %v must be positive", f.Epsilon))
	}
	if f.VisibleCount <= 0 {
		err = multierr.Append(err, fmt.Errorf("visible count %d must be positive", f.VisibleCount))
	}
	if _, ok := balloons.StrategyByName(f.Strategy); !ok {
		err = multierr.Append(err, fmt.Errorf("unknown visibility strategy %q", f.Strategy))
	}
	return err
}

// FieldConfig converts the tuning to a balloons.FieldConfig.
func (f Field) FieldConfig(logger *zap.Logger) (balloons.FieldConfig, error) {
	if err := f.Validate(); err != nil {
		return balloons.FieldConfig{}, err
	}
	strategy, _ := balloons.StrategyByName(f.Strategy)
	return balloons.FieldConfig{
		Scope:        f.Scope,
		MinDistance:  f.MinDistance,
		InitialY:     lo.ToPtr(f.InitialY),
		Smoothing:    f.Smoothing,
		Epsilon:      f.Epsilon,
		VisibleCount: f.VisibleCount,
		Strategy:     strategy,
		Logger:       logger,
	}, nil
}

// Logger builds the process logger: development output in debug mode,
// production JSON otherwise.
func (c *Config) Logger() (*zap.Logger, error) {
	if c.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
