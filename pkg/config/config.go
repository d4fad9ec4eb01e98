package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/boristopalov/enactive/pkg/core"
	"github.com/boristopalov/enactive/pkg/environment"
)

type ExperimentConfig struct {
	Name         string              `yaml:"name"`
	Turns        int                 `yaml:"turns"`
	HistorySize  int                 `yaml:"history_size"`
	Environment  EnvConfig           `yaml:"environment"`
	Interactions []InteractionConfig `yaml:"interactions"`
	Logging      LogConfig           `yaml:"logging"`
}

type EnvConfig struct {
	Kind     string `yaml:"kind"`     // fixed, alternating, windowed
	T1       int    `yaml:"t1"`       // windowed only
	T2       int    `yaml:"t2"`       // windowed only
	Previous string `yaml:"previous"` // alternating only
}

type InteractionConfig struct {
	Experiment string `yaml:"experiment"`
	Result     string `yaml:"result"`
	Valence    int    `yaml:"valence"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

func DefaultConfig() *ExperimentConfig {
	return &ExperimentConfig{
		Name:        "enactive",
		Turns:       10,
		HistorySize: 100,
		Environment: EnvConfig{
			Kind:     environment.KindWindowed,
			T1:       environment.DefaultT1,
			T2:       environment.DefaultT2,
			Previous: string(core.E2),
		},
		Interactions: []InteractionConfig{
			{Experiment: "e1", Result: "r1", Valence: -1},
			{Experiment: "e1", Result: "r2", Valence: 1},
			{Experiment: "e2", Result: "r1", Valence: -1},
			{Experiment: "e2", Result: "r2", Valence: 1},
		},
		Logging: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig reads a YAML configuration on top of the defaults. A
// missing file yields the defaults. Environment overrides are applied last.
func LoadConfig(path string) (*ExperimentConfig, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	return cfg, nil
}

func (c *ExperimentConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *ExperimentConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// ApplyEnvOverrides applies ENACTIVE_* environment variables
func (c *ExperimentConfig) ApplyEnvOverrides() {
	if v := os.Getenv("ENACTIVE_TURNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Turns = n
		}
	}
	if v := os.Getenv("ENACTIVE_ENVIRONMENT"); v != "" {
		c.Environment.Kind = v
	}
	if v := os.Getenv("ENACTIVE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *ExperimentConfig) Validate() error {
	if c.Turns < 1 {
		return fmt.Errorf("turns must be at least 1, got %d", c.Turns)
	}
	if len(c.Interactions) == 0 {
		return core.ErrNoInteractions
	}
	for i, ic := range c.Interactions {
		if ic.Experiment == "" || ic.Result == "" {
			return fmt.Errorf("interaction %d: experiment and result are required", i)
		}
	}
	if t1, t2 := c.Environment.T1, c.Environment.T2; t1 < 0 || t2 < 0 || t1 > t2 {
		return fmt.Errorf("environment window must satisfy 0 <= t1 <= t2, got t1=%d t2=%d", t1, t2)
	}
	if _, err := c.NewEnvironment(); err != nil {
		return err
	}
	return nil
}

// CoreInteractions converts the configured interactions
func (c *ExperimentConfig) CoreInteractions() []core.Interaction {
	interactions := make([]core.Interaction, 0, len(c.Interactions))
	for _, ic := range c.Interactions {
		interactions = append(interactions,
			core.NewInteraction(core.Experiment(ic.Experiment), core.Result(ic.Result), ic.Valence))
	}
	return interactions
}

// NewEnvironment builds a fresh environment of the configured kind
func (c *ExperimentConfig) NewEnvironment() (core.Environment, error) {
	return c.NewEnvironmentOf(c.Environment.Kind)
}

// NewEnvironmentOf builds a fresh environment of the given kind using
// the configured parameters.
func (c *ExperimentConfig) NewEnvironmentOf(kind string) (core.Environment, error) {
	var opts []environment.Option
	if c.Environment.T1 > 0 || c.Environment.T2 > 0 {
		opts = append(opts, environment.WithWindow(c.Environment.T1, c.Environment.T2))
	}
	if c.Environment.Previous != "" {
		opts = append(opts, environment.WithPrevious(core.Experiment(c.Environment.Previous)))
	}
	return environment.New(kind, opts...)
}
