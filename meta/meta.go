package meta

import (
	"errors"
	"fmt"
	"os"

	"connectrl/game"

	"gopkg.in/yaml.v3"
)

// Experiment names
const (
	Learning   = "learning"
	Comparison = "comparison"
)

// RUNS defines the number of independent training runs averaged per curve.
const RUNS = 5

// MAX_STEPS defines the number of learner moves per training run.
const MAX_STEPS = 20000

// INTERVAL defines the number of learner moves between evaluation batches.
const INTERVAL = 500

// EVAL_EPISODES defines the number of greedy episodes per evaluation batch.
const EVAL_EPISODES = 10

// WORKERS defines the number of runs executed concurrently.
const WORKERS = 4

const OUT_DIR = "experiments"

var ErrInvalidConfig = errors.New("invalid config")

type AgentConfig struct {
	Alpha     float64 `yaml:"alpha" json:"alpha"`
	Epsilon   float64 `yaml:"epsilon" json:"epsilon"`
	Gamma     float64 `yaml:"gamma" json:"gamma"`
	Symmetric bool    `yaml:"symmetric" json:"symmetric"`
}

type Config struct {
	Experiment   string      `yaml:"experiment" json:"experiment"`
	Rules        game.Rules  `yaml:"rules" json:"rules"`
	Runs         int         `yaml:"runs" json:"runs"`
	MaxSteps     int         `yaml:"maxSteps" json:"maxSteps"`
	Interval     int         `yaml:"interval" json:"interval"`
	EvalEpisodes int         `yaml:"evalEpisodes" json:"evalEpisodes"`
	Workers      int         `yaml:"workers" json:"workers"`
	Seed         uint64      `yaml:"seed" json:"seed"`
	OutDir       string      `yaml:"outDir" json:"outDir"`
	Agent        AgentConfig `yaml:"agent" json:"agent"`
}

func Default() Config {
	return Config{
		Experiment:   Learning,
		Rules:        game.StandardRules(),
		Runs:         RUNS,
		MaxSteps:     MAX_STEPS,
		Interval:     INTERVAL,
		EvalEpisodes: EVAL_EPISODES,
		Workers:      WORKERS,
		Seed:         1,
		OutDir:       OUT_DIR,
		Agent: AgentConfig{
			Alpha:   0.1,
			Epsilon: 0.2,
			Gamma:   1,
		},
	}
}

// Load reads a YAML config on top of the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Experiment != Learning && c.Experiment != Comparison {
		return fmt.Errorf("%w: unknown experiment %q", ErrInvalidConfig, c.Experiment)
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Runs <= 0 || c.MaxSteps <= 0 || c.Interval <= 0 || c.EvalEpisodes <= 0 || c.Workers <= 0 {
		return fmt.Errorf("%w: runs, steps, interval, episodes and workers must be positive", ErrInvalidConfig)
	}
	if c.Agent.Alpha <= 0 || c.Agent.Alpha > 1 {
		return fmt.Errorf("%w: alpha %v not in (0, 1]", ErrInvalidConfig, c.Agent.Alpha)
	}
	if c.Agent.Epsilon < 0 || c.Agent.Epsilon > 1 {
		return fmt.Errorf("%w: epsilon %v not in [0, 1]", ErrInvalidConfig, c.Agent.Epsilon)
	}
	if c.Agent.Gamma < 0 || c.Agent.Gamma > 1 {
		return fmt.Errorf("%w: gamma %v not in [0, 1]", ErrInvalidConfig, c.Agent.Gamma)
	}
	return nil
}
