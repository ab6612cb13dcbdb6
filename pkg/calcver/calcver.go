// Package calcver provides the public Go API for deriving a deterministic
// project version string from the state of a git repository.
//
// Basic usage:
//
//	calc, err := calcver.New(calcver.Options{Path: "/path/to/repo"})
//	if err != nil { ... }
//	defer calc.Close()
//
//	version, err := calc.ComputeVersion()        // "1.2.3-2"
//	distance, ok := calc.Metadata("COMMIT_DISTANCE")
//
// One Calculator performs one computation; the result is memoized for the
// life of the instance. Create a new Calculator for a fresh computation.
package calcver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/calcver/calcver/internal/calculator"
	"github.com/calcver/calcver/internal/config"
	"github.com/calcver/calcver/internal/errs"
	"github.com/calcver/calcver/internal/git"
	"github.com/calcver/calcver/internal/metadata"
)

// Error kinds surfaced by the calculator, usable with errors.As:
// configuration problems, repository read failures, a dirty working tree
// under fail-if-dirty, and script or template calculation failures.
type (
	ConfigurationError    = errs.ConfigurationError
	RepositoryAccessError = errs.RepositoryAccessError
	DirtyRepositoryError  = errs.DirtyRepositoryError
	CalculationError      = errs.CalculationError
)

// configFileNames lists the files searched for configuration in order.
var configFileNames = []string{
	".calcver.yml",
	"calcver.yml",
}

// Options configures version calculation for a local git repository.
type Options struct {
	// Path to the git repository. Defaults to "." if empty.
	Path string

	// ConfigPath is the path to a calcver YAML config file. If empty,
	// auto-detects .calcver.yml or calcver.yml in the repository root.
	ConfigPath string

	// Logger receives calculation traces. Nil discards them.
	Logger *zerolog.Logger
}

// Calculator computes one version from one repository.
type Calculator struct {
	inner *calculator.Calculator
}

// New opens the repository, loads configuration, and builds a Calculator.
// Structurally invalid configuration fails here, before any history access.
func New(opts Options) (*Calculator, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}

	repo, err := git.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	cfg, err := loadConfig(opts.ConfigPath, repo.WorkingDirectory())
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	var calcOpts []calculator.Option
	if opts.Logger != nil {
		calcOpts = append(calcOpts, calculator.WithLogger(*opts.Logger))
	}

	inner, err := calculator.New(repo, cfg, calcOpts...)
	if err != nil {
		repo.Close()
		return nil, err
	}

	return &Calculator{inner: inner}, nil
}

// ComputeVersion returns the canonical version string. Repeated calls
// return the memoized result without re-walking the graph.
func (c *Calculator) ComputeVersion() (string, error) {
	return c.inner.ComputeVersion()
}

// Metadata returns the value for a metadata key name (e.g.
// "COMMIT_DISTANCE"). Valid only after ComputeVersion has run; keys not
// applicable to the current configuration report ok=false.
func (c *Calculator) Metadata(key string) (string, bool) {
	return c.inner.Metadata(metadata.Key(key))
}

// MetadataSnapshot resolves the full metadata set into a map. Empty until
// ComputeVersion has run.
func (c *Calculator) MetadataSnapshot() map[string]string {
	return c.inner.MetadataSnapshot()
}

// MetadataKeys returns every recognized metadata key name in stable order.
func MetadataKeys() []string {
	keys := metadata.AllKeys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

// Close releases the repository handle. Call it on every path, success or
// failure.
func (c *Calculator) Close() error {
	return c.inner.Close()
}

// loadConfig loads configuration from a file path or auto-detects it.
func loadConfig(configPath, workDir string) (*config.Configuration, error) {
	if configPath == "" {
		configPath = findConfigFile(workDir)
	}
	if configPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(configPath)
}

// findConfigFile searches for a config file in the given directory.
func findConfigFile(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
