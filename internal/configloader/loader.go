// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/lo"

	"github.com/yaklabco/qdiff/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// NoConfig skips every config file, including ExplicitPath.
	NoConfig bool

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (QDIFF_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.qdiff.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/qdiff/config.yaml)
//  6. System config (/etc/qdiff/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{
		Paths: &ConfigPaths{},
	}

	// Start with defaults
	cfg := config.NewConfig()

	if !opts.NoConfig {
		workDir := opts.WorkingDir
		if workDir == "" {
			var err error
			workDir, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("get working directory: %w", err)
			}
		}

		paths, err := DiscoverPaths(ctx, workDir)
		if err != nil {
			return nil, fmt.Errorf("discover paths: %w", err)
		}
		paths.Explicit = opts.ExplicitPath
		result.Paths = paths

		// Load and merge in order (lowest to highest precedence)
		layers := []struct {
			name   string
			path   string
			ignore bool
		}{
			{"system", paths.System, opts.IgnoreSystemConfig},
			{"user", paths.User, opts.IgnoreUserConfig},
			{"project", paths.Project, opts.IgnoreProjectConfig},
			{"explicit", paths.Explicit, false},
		}

		for _, layer := range layers {
			if layer.ignore || layer.path == "" {
				continue
			}
			layerCfg, err := loadLayer(layer.path)
			if err != nil {
				return nil, fmt.Errorf("load %s config: %w", layer.name, err)
			}
			cfg = merge(cfg, layerCfg)
			result.LoadedFrom = append(result.LoadedFrom, layer.path)
		}

		for _, sh := range paths.Shadowed {
			if !lo.Contains(result.LoadedFrom, sh.Using) {
				continue
			}
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("config file %s ignored: %s in the same directory takes precedence", sh.Path, sh.Using))
		}
	}

	// Environment variables
	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	// CLI config (highest precedence)
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// Validate final configuration
	validation := Validate(cfg)
	if !validation.Valid() {
		// Return first error
		return nil, &validation.Errors[0]
	}

	// Add validation warnings to result
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadLayer loads a config file and validates it on top of the defaults, so
// errors carry the file they came from.
func loadLayer(path string) (*config.Config, error) {
	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}

	validation := ValidateWithFile(merge(config.NewConfig(), cfg), path)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	return cfg, nil
}

// loadConfigFile loads a configuration from a YAML or TOML file, chosen by
// extension. Files without a TOML extension are read as YAML.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if IsTOMLConfig(path) {
		return config.FromTOML(content)
	}
	return config.FromYAML(content)
}
