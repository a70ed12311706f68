package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fjglira/tcbridge/internal/domain"
)

// Config is the top-level configuration struct.
type Config struct {
	Enabled  *bool          `yaml:"enabled"` // nil means detect from the environment
	Adapter  string         `yaml:"adapter"` // "result" or "plugin"
	Identity IdentityConfig `yaml:"identity"`
	Classify ClassifyConfig `yaml:"classify"`
	Capture  CaptureConfig  `yaml:"capture"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Summary  SummaryConfig  `yaml:"summary"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type IdentityConfig struct {
	DocTestKinds []string `yaml:"doctest_kinds"`
}

type ClassifyConfig struct {
	SkipKinds        []string `yaml:"skip_kinds"`
	DeprecatedKinds  []string `yaml:"deprecated_kinds"`
	ErrorHolderKinds []string `yaml:"error_holder_kinds"`
}

type CaptureConfig struct {
	MaxOutputSize int `yaml:"max_output_size"`
	ChunkSize     int `yaml:"chunk_size"`
}

type InputConfig struct {
	Directories []string `yaml:"directories"`
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	Recursive   *bool    `yaml:"recursive"` // pointer to distinguish unset from false
}

type OutputConfig struct {
	Timestamps bool `yaml:"timestamps"`
}

type SummaryConfig struct {
	Enabled bool `yaml:"enabled"`
	Colored bool `yaml:"colored"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML configuration file and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError("config", "", "failed to read config file "+path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewError("config", "", "failed to parse config file "+path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it exists and returns the defaults otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// ResolveEnabled returns the configured enablement, falling back to whether
// the process runs under TeamCity. It is meant to be called once at startup.
func (c *Config) ResolveEnabled() bool {
	if c.Enabled != nil {
		return *c.Enabled
	}
	return os.Getenv(TeamCityEnv) != ""
}
