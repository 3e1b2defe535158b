package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"uctbot/meta"
	"uctbot/searcher"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var Policies = []string{"uniform", "priority"}

type Config struct {
	Search   SearchConfig   `yaml:"search"`
	SelfPlay SelfPlayConfig `yaml:"selfplay"`
	Log      LogConfig      `yaml:"log"`
}

type SearchConfig struct {
	Iterations  int     `yaml:"iterations"`
	Exploration float64 `yaml:"exploration"`
	MaxPlies    int     `yaml:"max_plies"`
	Seed        uint64  `yaml:"seed"` // 0 seeds from the clock
	Policy      string  `yaml:"policy"`
}

type AgentConfig struct {
	Iterations  int     `yaml:"iterations"`
	Exploration float64 `yaml:"exploration"`
	Policy      string  `yaml:"policy"`
	Temperature float64 `yaml:"temperature"` // 0 plays the best move
}

type SelfPlayConfig struct {
	Name    string        `yaml:"name"`
	Games   int           `yaml:"games"`
	Workers int           `yaml:"workers"`
	Output  string        `yaml:"output"`
	Agents  []AgentConfig `yaml:"agents"` // Empty plays the search config against itself
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

func Default() Config {
	return Config{
		Search: SearchConfig{
			Iterations:  searcher.DefaultIterations,
			Exploration: searcher.CSquared,
			MaxPlies:    searcher.MaxRolloutPlies,
			Policy:      meta.POLICY,
		},
		SelfPlay: SelfPlayConfig{
			Name:    "selfplay",
			Games:   meta.GAMES,
			Workers: meta.WORKERS,
			Output:  meta.OUTPUT_DIR,
		},
		Log: LogConfig{
			Level:  meta.LOG_LEVEL,
			Pretty: true,
		},
	}
}

// Load reads the YAML config at path on top of the defaults. An empty path looks the file up
// in the XDG config directories and falls back to the defaults when there is none.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		found, err := xdg.SearchConfigFile(meta.CONFIG_FILE)
		if err != nil {
			return cfg, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Search.Iterations < 0 {
		errs = append(errs, fmt.Errorf("search.iterations must not be negative, got %d", c.Search.Iterations))
	}
	if !validExploration(c.Search.Exploration) {
		errs = append(errs, fmt.Errorf("search.exploration must be finite and not negative, got %g", c.Search.Exploration))
	}
	if c.Search.MaxPlies <= 0 {
		errs = append(errs, fmt.Errorf("search.max_plies must be positive, got %d", c.Search.MaxPlies))
	}
	if !validPolicy(c.Search.Policy) {
		errs = append(errs, fmt.Errorf("search.policy %q is not one of %v", c.Search.Policy, Policies))
	}
	if c.SelfPlay.Games < 0 {
		errs = append(errs, fmt.Errorf("selfplay.games must not be negative, got %d", c.SelfPlay.Games))
	}
	if c.SelfPlay.Workers <= 0 {
		errs = append(errs, fmt.Errorf("selfplay.workers must be positive, got %d", c.SelfPlay.Workers))
	}
	for i, a := range c.SelfPlay.Agents {
		if a.Iterations < 0 {
			errs = append(errs, fmt.Errorf("selfplay.agents[%d].iterations must not be negative, got %d", i, a.Iterations))
		}
		if !validExploration(a.Exploration) {
			errs = append(errs, fmt.Errorf("selfplay.agents[%d].exploration must be finite and not negative, got %g", i, a.Exploration))
		}
		if a.Policy != "" && !validPolicy(a.Policy) {
			errs = append(errs, fmt.Errorf("selfplay.agents[%d].policy %q is not one of %v", i, a.Policy, Policies))
		}
		if a.Temperature < 0 || math.IsInf(a.Temperature, 1) || math.IsNaN(a.Temperature) {
			errs = append(errs, fmt.Errorf("selfplay.agents[%d].temperature must be finite and not negative, got %g", i, a.Temperature))
		}
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// SearchOptions converts the search section into searcher options.
func (c SearchConfig) SearchOptions() []searcher.Option {
	options := []searcher.Option{
		searcher.WithIterations(c.Iterations),
		searcher.WithExploration(c.Exploration),
		searcher.WithMaxPlies(c.MaxPlies),
	}
	if c.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Seed))
	}
	return options
}

// AgentConfigs lists the self-play agents, filling unset fields from the search section.
func (c Config) AgentConfigs() []AgentConfig {
	if len(c.SelfPlay.Agents) == 0 {
		return []AgentConfig{{
			Iterations:  c.Search.Iterations,
			Exploration: c.Search.Exploration,
			Policy:      c.Search.Policy,
		}}
	}
	agents := make([]AgentConfig, len(c.SelfPlay.Agents))
	for i, a := range c.SelfPlay.Agents {
		if a.Iterations == 0 {
			a.Iterations = c.Search.Iterations
		}
		if a.Exploration == 0 {
			a.Exploration = c.Search.Exploration
		}
		if a.Policy == "" {
			a.Policy = c.Search.Policy
		}
		agents[i] = a
	}
	return agents
}

func validExploration(c float64) bool {
	return c >= 0 && !math.IsInf(c, 1)
}

func validPolicy(name string) bool {
	for _, p := range Policies {
		if p == name {
			return true
		}
	}
	return false
}
