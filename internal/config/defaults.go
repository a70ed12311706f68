package config

import (
	"github.com/fjglira/tcbridge/internal/capture"
	"github.com/fjglira/tcbridge/internal/identity"
	"github.com/fjglira/tcbridge/internal/reporter"
)

// TeamCityEnv is set by TeamCity build agents.
const TeamCityEnv = "TEAMCITY_VERSION"

// Adapter names.
const (
	AdapterResult = "result"
	AdapterPlugin = "plugin"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	recursive := true
	kinds := reporter.DefaultKinds()
	return &Config{
		Adapter: AdapterResult,
		Identity: IdentityConfig{
			DocTestKinds: append([]string(nil), identity.DefaultDocTestKinds...),
		},
		Classify: ClassifyConfig{
			SkipKinds:        kinds.Skip,
			DeprecatedKinds:  kinds.Deprecated,
			ErrorHolderKinds: kinds.ErrorHolder,
		},
		Capture: CaptureConfig{
			MaxOutputSize: capture.DefaultMaxOutputSize,
			ChunkSize:     capture.DefaultChunkSize,
		},
		Input: InputConfig{
			Directories: []string{"."},
			Include:     []string{"*.json", "*.jsonl"},
			Exclude:     []string{"vendor/**", "node_modules/**"},
			Recursive:   &recursive,
		},
		Output: OutputConfig{
			Timestamps: true,
		},
		Summary: SummaryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Kinds returns the classification kinds as the reporter expects them.
func (c *Config) Kinds() reporter.Kinds {
	return reporter.Kinds{
		Skip:        c.Classify.SkipKinds,
		Deprecated:  c.Classify.DeprecatedKinds,
		ErrorHolder: c.Classify.ErrorHolderKinds,
	}
}
