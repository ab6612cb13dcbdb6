package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/calcver/calcver/internal/calculator"
	"github.com/calcver/calcver/internal/config"
	"github.com/calcver/calcver/internal/git"
	"github.com/calcver/calcver/internal/metadata"
)

// configFileNames lists the files searched for configuration in order.
var configFileNames = []string{
	".calcver.yml",
	"calcver.yml",
}

func calculateRunE(cmd *cobra.Command, _ []string) error {
	calc, err := newCalculator(cmd)
	if err != nil {
		return err
	}
	defer calc.Close()

	version, err := calc.ComputeVersion()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if flagShowKey != "" {
		return writeMetadataValue(w, calc, flagShowKey)
	}

	switch flagOutput {
	case "json":
		return writeJSON(w, map[string]string{"version": version})
	default:
		_, err = fmt.Fprintln(w, version)
		return err
	}
}

// newCalculator opens the repository, loads and overrides configuration,
// and builds the calculator shared by the calculate and metadata commands.
func newCalculator(cmd *cobra.Command) (*calculator.Calculator, error) {
	repo, err := git.Open(flagPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	cfg, err := loadConfig(repo.WorkingDirectory())
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	applyFlagOverrides(cmd, cfg)

	calc, err := calculator.New(repo, cfg, calculator.WithLogger(newLogger()))
	if err != nil {
		repo.Close()
		return nil, err
	}
	return calc, nil
}

// applyFlagOverrides lets explicit CLI flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Configuration) {
	if cmd.Flags().Changed("strategy") {
		cfg.Strategy = flagStrategy
	}
	if cmd.Flags().Changed("snapshot") {
		cfg.UseSnapshot = flagSnapshot
	}
	if cmd.Flags().Changed("auto-increment-patch") {
		cfg.AutoIncrementPatch = flagAutoBump
	}
	if cmd.Flags().Changed("fail-if-dirty") {
		cfg.FailIfDirty = flagFailIfDirty
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxSearchDepth = flagMaxDepth
	}
}

// loadConfig loads configuration from a file or defaults.
func loadConfig(workDir string) (*config.Configuration, error) {
	configPath := flagConfig
	if configPath == "" {
		configPath = findConfigFile(workDir)
	}
	if configPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(configPath)
}

// findConfigFile searches for a config file in the working directory.
func findConfigFile(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// writeMetadataValue prints one metadata value, failing on unknown keys.
func writeMetadataValue(w io.Writer, calc *calculator.Calculator, key string) error {
	if !metadata.Key(key).Valid() {
		return fmt.Errorf("unknown metadata key %q", key)
	}
	value, ok := calc.Metadata(metadata.Key(key))
	if !ok {
		return fmt.Errorf("metadata key %q is not applicable to this configuration", key)
	}
	_, err := fmt.Fprintln(w, value)
	return err
}

// writeJSON writes v indented to w.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
