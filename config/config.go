package config

import (
	"errors"
	"fmt"
	"isolation/game"
	"isolation/meta"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	Minimax   = "minimax"
	AlphaBeta = "alphabeta"
	Greedy    = "greedy"
	Random    = "random"
)

// Config describes a tournament between isolation agents
type Config struct {
	Name           string        `yaml:"name"`
	OutputDir      string        `yaml:"output_dir"`
	Board          Board         `yaml:"board"`
	TimeLimit      time.Duration `yaml:"time_limit"`
	Games          int           `yaml:"games"`           // Games per matchup and seat order
	RandomOpenings int           `yaml:"random_openings"` // Random moves played before the agents take over
	MaxMoves       int           `yaml:"max_moves"`
	Workers        int           `yaml:"workers"` // Games played at once
	Seed           uint64        `yaml:"seed"`
	Agents         []Agent       `yaml:"agents"`
	Matchups       [][2]string   `yaml:"matchups"` // Round robin when empty
}

type Board struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
}

type Agent struct {
	Name      string        `yaml:"name"`
	Algorithm string        `yaml:"algorithm"`
	Evaluator string        `yaml:"evaluator"`
	Depth     int           `yaml:"depth"`     // minimax only
	MaxDepth  int           `yaml:"max_depth"` // alphabeta only
	Threshold time.Duration `yaml:"threshold"`
}

func Default() Config {
	config := Config{
		Name:           "isolation",
		OutputDir:      "results",
		Board:          Board{Height: meta.BOARD_HEIGHT, Width: meta.BOARD_WIDTH},
		TimeLimit:      meta.TIME_LIMIT,
		Games:          meta.GAMES,
		RandomOpenings: meta.RANDOM_OPENINGS,
		MaxMoves:       meta.BOARD_HEIGHT * meta.BOARD_WIDTH,
		Workers:        4,
		Seed:           1,
		Agents: []Agent{
			{Name: "Random", Algorithm: Random},
			{Name: "MM_Open", Algorithm: Minimax, Evaluator: "open"},
			{Name: "AB_Improved", Algorithm: AlphaBeta, Evaluator: "improved"},
			{Name: "AB_Center", Algorithm: AlphaBeta, Evaluator: "center"},
		},
	}
	config.applyDefaults()
	return config
}

// Load reads a YAML tournament file over the defaults. An empty path returns
// the defaults. Environment variables override the file.
func Load(path string) (Config, error) {
	config := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("read config: %w", err)
		}
		if config, err = Parse(data); err != nil {
			return config, err
		}
	}

	envErr := loadFromEnv(&config)

	if err := errors.Join(envErr, config.Validate()); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Parse decodes YAML over the defaults. A file listing agents replaces the
// default agents.
func Parse(data []byte) (Config, error) {
	config := Default()
	config.Agents = nil
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config: %w", err)
	}
	if len(config.Agents) == 0 {
		config.Agents = Default().Agents
	}
	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	for i := range c.Agents {
		c.Agents[i] = c.Agents[i].WithDefaults()
	}
}

// WithDefaults fills the unset search settings
func (a Agent) WithDefaults() Agent {
	if a.Evaluator == "" {
		a.Evaluator = "improved"
	}
	if a.Depth == 0 {
		a.Depth = meta.SEARCH_DEPTH
	}
	if a.MaxDepth == 0 {
		a.MaxDepth = meta.MAX_DEPTH
	}
	if a.Threshold == 0 {
		a.Threshold = meta.TIMER_THRESHOLD
	}
	return a
}

func loadFromEnv(config *Config) error {
	var errs []error

	if v := os.Getenv("ISOLATION_TIME_LIMIT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TimeLimit = d
		} else {
			errs = append(errs, fmt.Errorf("ISOLATION_TIME_LIMIT: %w", err))
		}
	}
	if v := os.Getenv("ISOLATION_GAMES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Games = i
		} else {
			errs = append(errs, fmt.Errorf("ISOLATION_GAMES: %w", err))
		}
	}
	if v := os.Getenv("ISOLATION_WORKERS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Workers = i
		} else {
			errs = append(errs, fmt.Errorf("ISOLATION_WORKERS: %w", err))
		}
	}
	if v := os.Getenv("ISOLATION_OUTPUT_DIR"); v != "" {
		config.OutputDir = v
	}

	return errors.Join(errs...)
}

func (c Config) Validate() error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if c.Board.Height < 3 || c.Board.Width < 3 {
		errs = append(errs, fmt.Errorf("board %dx%d is smaller than 3x3", c.Board.Height, c.Board.Width))
	}
	if c.TimeLimit <= 0 {
		errs = append(errs, fmt.Errorf("time_limit must be positive, got %v", c.TimeLimit))
	}
	if c.Games <= 0 {
		errs = append(errs, fmt.Errorf("games must be positive, got %d", c.Games))
	}
	if c.RandomOpenings < 0 || c.RandomOpenings > 2 {
		errs = append(errs, fmt.Errorf("random_openings must be between 0 and 2, got %d", c.RandomOpenings))
	}
	if c.MaxMoves <= 0 {
		errs = append(errs, fmt.Errorf("max_moves must be positive, got %d", c.MaxMoves))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if len(c.Agents) < 2 {
		errs = append(errs, fmt.Errorf("at least 2 agents are required, got %d", len(c.Agents)))
	}

	names := make(map[string]bool, len(c.Agents))
	for _, agent := range c.Agents {
		if names[agent.Name] {
			errs = append(errs, fmt.Errorf("duplicate agent %q", agent.Name))
		}
		names[agent.Name] = true
		if err := agent.Validate(c.TimeLimit); err != nil {
			errs = append(errs, err)
		}
	}

	for _, matchup := range c.Matchups {
		for _, name := range matchup {
			if !names[name] {
				errs = append(errs, fmt.Errorf("matchup %v names unknown agent %q", matchup, name))
			}
		}
		if matchup[0] == matchup[1] {
			errs = append(errs, fmt.Errorf("matchup %v plays an agent against itself", matchup))
		}
	}

	return errors.Join(errs...)
}

func (a Agent) Validate(timeLimit time.Duration) error {
	if a.Name == "" {
		return errors.New("agent name is required")
	}
	switch a.Algorithm {
	case Minimax, AlphaBeta, Greedy, Random:
	default:
		return fmt.Errorf("agent %q: unknown algorithm %q", a.Name, a.Algorithm)
	}
	if _, err := game.LookupEvaluator(a.Evaluator); err != nil {
		return fmt.Errorf("agent %q: %w", a.Name, err)
	}
	if a.Depth < 0 || a.MaxDepth <= 0 {
		return fmt.Errorf("agent %q: invalid search depth %d (max %d)", a.Name, a.Depth, a.MaxDepth)
	}
	if a.Threshold < 0 || a.Threshold >= timeLimit {
		return fmt.Errorf("agent %q: threshold %v must be below the time limit %v", a.Name, a.Threshold, timeLimit)
	}
	return nil
}

// Pairs returns the configured matchups, or every pair of agents in
// configuration order.
func (c Config) Pairs() [][2]string {
	if len(c.Matchups) > 0 {
		return c.Matchups
	}
	var pairs [][2]string
	for i := range c.Agents {
		for j := i + 1; j < len(c.Agents); j++ {
			pairs = append(pairs, [2]string{c.Agents[i].Name, c.Agents[j].Name})
		}
	}
	return pairs
}
