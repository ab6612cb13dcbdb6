package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagPath        string
	flagConfig      string
	flagOutput      string
	flagShowKey     string
	flagVerbosity   string
	flagStrategy    string
	flagSnapshot    bool
	flagAutoBump    bool
	flagFailIfDirty bool
	flagMaxDepth    int
)

// rootCmd is the top-level command for calcver.
var rootCmd = &cobra.Command{
	Use:   "calcver",
	Short: "Project versions from git history",
	Long:  "calcver derives a deterministic project version from the nearest version tag, commit distance, branch and working tree state.",
	// Default action is calculate.
	RunE: calculateRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", ".", "path to the git repository")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "plain", "output format: plain or json")
	rootCmd.PersistentFlags().StringVar(&flagShowKey, "show-metadata", "", "output a single metadata value (e.g. COMMIT_DISTANCE)")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "quiet", "log verbosity: quiet, info, debug")

	rootCmd.Flags().StringVar(&flagStrategy, "strategy", "", "override the version strategy: maven, pattern or script")
	rootCmd.Flags().BoolVar(&flagSnapshot, "snapshot", false, "replace qualifiers with -SNAPSHOT when ahead of or dirty against the base tag")
	rootCmd.Flags().BoolVar(&flagAutoBump, "auto-increment-patch", false, "increment the patch component when ahead of the base tag")
	rootCmd.Flags().BoolVar(&flagFailIfDirty, "fail-if-dirty", false, "fail when the working tree has uncommitted changes")
	rootCmd.Flags().IntVar(&flagMaxDepth, "max-depth", 0, "cap the backward search depth (0 = uncapped)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the CLI logger from the verbosity flag. Anything below
// info is discarded entirely.
func newLogger() zerolog.Logger {
	var level zerolog.Level
	switch flagVerbosity {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	default:
		return zerolog.Nop()
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
