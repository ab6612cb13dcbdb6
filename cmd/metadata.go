package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calcver/calcver/internal/metadata"
)

// metadataCmd prints the full metadata set computed alongside the version.
var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Print all metadata computed during version calculation",
	RunE:  metadataRunE,
}

func init() {
	rootCmd.AddCommand(metadataCmd)
}

func metadataRunE(cmd *cobra.Command, _ []string) error {
	calc, err := newCalculator(cmd)
	if err != nil {
		return err
	}
	defer calc.Close()

	if _, err := calc.ComputeVersion(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	snapshot := calc.MetadataSnapshot()

	if flagOutput == "json" {
		return writeJSON(w, snapshot)
	}

	// Stable order, skipping keys not applicable to this configuration.
	for _, key := range metadata.AllKeys() {
		value, ok := snapshot[string(key)]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", key, value); err != nil {
			return err
		}
	}
	return nil
}
