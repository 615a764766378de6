// Package genkit provides configuration types for guardgen.
package genkit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the name of the project configuration file.
const ConfigFileName = "guardgen.toml"

// Config represents the project-level guardgen.toml configuration.
type Config struct {
	// OutputDir is where generated files go. Relative paths are resolved
	// against the directory holding the configuration file.
	OutputDir string `toml:"output_dir" json:"outputDir"`

	// Files names the generated artifacts.
	Files FileNames `toml:"files" json:"files"`

	// Emit toggles optional artifacts.
	Emit EmitOptions `toml:"emit" json:"emit"`

	// Sanitizer tunes sanitizer generation.
	Sanitizer SanitizerOptions `toml:"sanitizer" json:"sanitizer"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-" json:"path,omitempty"`
}

// FileNames names the generated artifacts.
type FileNames struct {
	Types      string `toml:"types" json:"types"`
	Validators string `toml:"validators" json:"validators"`
	Sanitizers string `toml:"sanitizers" json:"sanitizers"`
	Dates      string `toml:"dates" json:"dates"`
	Services   string `toml:"services" json:"services"`
}

// EmitOptions toggles optional artifacts.
type EmitOptions struct {
	// Types emits the TypeScript declarations. Disable when they come from elsewhere.
	Types bool `toml:"types" json:"types"`

	// Services emits the validated service wrappers.
	Services bool `toml:"services" json:"services"`
}

// UnionStrategy selects how union sanitizers pick their member.
type UnionStrategy string

const (
	// UnionStrategyGuard probes member type guards, most properties first.
	UnionStrategyGuard UnionStrategy = "guard"

	// UnionStrategyMerge sanitizes as every member and merges the results.
	UnionStrategyMerge UnionStrategy = "merge"
)

// SanitizerOptions tunes sanitizer generation.
type SanitizerOptions struct {
	UnionStrategy UnionStrategy `toml:"union_strategy" json:"unionStrategy"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "generated",
		Files: FileNames{
			Types:      "types.ts",
			Validators: "validators.ts",
			Sanitizers: "sanitizers.ts",
			Dates:      "dateUtils.ts",
			Services:   "validatedServices.ts",
		},
		Emit: EmitOptions{
			Types:    true,
			Services: true,
		},
		Sanitizer: SanitizerOptions{
			UnionStrategy: UnionStrategyGuard,
		},
	}
}

// LoadConfig loads guardgen.toml from the given directory.
// It searches the directory and its parents up to the root and falls back
// to DefaultConfig when nothing is found.
func LoadConfig(dir string) (*Config, error) {
	configPath, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		return DefaultConfig(), nil
	}
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// Keys missing from the file keep their default values.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parse config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	cfg.Path = path
	if !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(filepath.Dir(path), cfg.OutputDir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfig searches for guardgen.toml starting from dir and walking up.
// Returns empty string if not found.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	for {
		configPath := filepath.Join(absDir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", nil
		}
		absDir = parent
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	names := map[string]string{
		"files.types":      c.Files.Types,
		"files.validators": c.Files.Validators,
		"files.sanitizers": c.Files.Sanitizers,
		"files.dates":      c.Files.Dates,
		"files.services":   c.Files.Services,
	}
	seen := make(map[string]string, len(names))
	for key, name := range names {
		if !strings.HasSuffix(name, ".ts") {
			return fmt.Errorf("%s must name a .ts file, got %q", key, name)
		}
		if other, ok := seen[name]; ok {
			return fmt.Errorf("%s and %s both name %q", key, other, name)
		}
		seen[name] = key
	}
	switch c.Sanitizer.UnionStrategy {
	case UnionStrategyGuard, UnionStrategyMerge:
	default:
		return fmt.Errorf("sanitizer.union_strategy must be %q or %q, got %q",
			UnionStrategyGuard, UnionStrategyMerge, c.Sanitizer.UnionStrategy)
	}
	return nil
}

// OutputPath returns where a generated file of a service goes.
func (c *Config) OutputPath(service, filename string) string {
	return OutputPath(filepath.Join(c.OutputDir, service), filename)
}

// Module returns the relative import specifier of a generated file.
func Module(filename string) TSModule {
	return TSModule("./" + strings.TrimSuffix(filename, filepath.Ext(filename)))
}

// EncodeTOML writes the configuration as TOML.
func (c *Config) EncodeTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
