package config

import (
	"fmt"
	"strings"

	"github.com/fjglira/tcbridge/internal/domain"
)

// Validate checks the Config for required fields and valid values.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Adapter != AdapterResult && cfg.Adapter != AdapterPlugin {
		errs = append(errs, fmt.Sprintf("adapter must be one of: %s, %s (got %q)", AdapterResult, AdapterPlugin, cfg.Adapter))
	}

	// Capture limits
	if cfg.Capture.MaxOutputSize <= 0 {
		errs = append(errs, "capture.max_output_size must be positive")
	}
	if cfg.Capture.ChunkSize <= 0 {
		errs = append(errs, "capture.chunk_size must be positive")
	}
	if cfg.Capture.ChunkSize > cfg.Capture.MaxOutputSize && cfg.Capture.MaxOutputSize > 0 {
		errs = append(errs, "capture.chunk_size must not exceed capture.max_output_size")
	}

	// Classification
	if len(cfg.Classify.SkipKinds) == 0 {
		errs = append(errs, "classify.skip_kinds must not be empty")
	}
	for _, k := range cfg.Classify.SkipKinds {
		for _, d := range cfg.Classify.DeprecatedKinds {
			if k == d {
				errs = append(errs, fmt.Sprintf("kind %q is listed as both skip and deprecated", k))
			}
		}
	}

	// Input
	if len(cfg.Input.Include) == 0 {
		errs = append(errs, "input.include must not be empty")
	}

	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		return domain.NewError("config", "", fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}
