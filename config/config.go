package config

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/quadslice/featureflag"
	"github.com/aukilabs/quadslice/quadtree"
	"github.com/kelseyhightower/envconfig"
	"github.com/paulmach/orb"
	"github.com/segmentio/encoding/json"
)

// Prefix is the prefix of the environment variables read by Load.
const Prefix = "QUADSLICE"

const (
	ErrTypeInvalidConfig = "invalid_config"
)

type Config struct {
	MaxPoints      int      `envconfig:"MAX_POINTS" default:"3"`
	MaxDepth       int      `envconfig:"MAX_DEPTH" default:"20"`
	RootCenterX    float64  `envconfig:"ROOT_CENTER_X" default:"0"`
	RootCenterY    float64  `envconfig:"ROOT_CENTER_Y" default:"0"`
	RootHalfWidth  float64  `envconfig:"ROOT_HALF_WIDTH" default:"180"`
	RootHalfHeight float64  `envconfig:"ROOT_HALF_HEIGHT" default:"90"`
	RootFromPoints bool     `envconfig:"ROOT_FROM_POINTS" default:"false"`
	FeatureFlags   []string `envconfig:"FEATURE_FLAGS"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"info"`
	LogIndent      bool     `envconfig:"LOG_INDENT" default:"false"`
}

// Load reads the configuration from QUADSLICE_ prefixed environment
// variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, errors.New("loading config failed").
			WithType(ErrTypeInvalidConfig).
			Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.MaxPoints < 1:
		return errors.New("max points must be greater than 0").
			WithType(ErrTypeInvalidConfig).
			WithTag("max_points", c.MaxPoints)

	case c.MaxDepth < 0:
		return errors.New("max depth must not be negative").
			WithType(ErrTypeInvalidConfig).
			WithTag("max_depth", c.MaxDepth)

	case !c.RootFromPoints && (c.RootHalfWidth <= 0 || c.RootHalfHeight <= 0):
		return errors.New("root half-size must be positive").
			WithType(ErrTypeInvalidConfig).
			WithTag("root_half_width", c.RootHalfWidth).
			WithTag("root_half_height", c.RootHalfHeight)

	default:
		return nil
	}
}

// TreeOptions returns the quadtree options matching the configuration.
func (c Config) TreeOptions() []quadtree.Option {
	opts := []quadtree.Option{
		quadtree.WithMaxPoints(c.MaxPoints),
		quadtree.WithMaxDepth(c.MaxDepth),
		quadtree.WithRootExtent(
			orb.Point{c.RootCenterX, c.RootCenterY},
			orb.Point{c.RootHalfWidth, c.RootHalfHeight},
		),
		quadtree.WithFeatureFlags(featureflag.New(c.FeatureFlags)),
	}

	if c.RootFromPoints {
		opts = append(opts, quadtree.WithRootFromPoints())
	}
	return opts
}

// SetupLogs sets the log level and the JSON encoders used by logs and errors.
func (c Config) SetupLogs() {
	logs.SetLevel(logs.ParseLevel(c.LogLevel))
	logs.Encoder = json.Marshal
	if c.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal
}
