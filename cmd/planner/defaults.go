package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simaogato/wealthflow-planner/internal/scenario"
	"github.com/simaogato/wealthflow-planner/internal/usecase/planner"
	"github.com/simaogato/wealthflow-planner/internal/usecase/seeder"
)

var (
	flagFormat string
	flagOutput string
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Write the default scenario as a starting point",
	Args:  cobra.NoArgs,
	RunE:  runDefaults,
}

func init() {
	defaultsCmd.Flags().StringVarP(&flagFormat, "format", "f", "yaml", "Output format (yaml, toml)")
	defaultsCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(defaultsCmd)
}

func runDefaults(cmd *cobra.Command, _ []string) error {
	doc := scenario.FromRequest(planner.PlanRequest{
		Name:      "default",
		Settings:  seeder.DefaultSettings,
		Portfolio: seeder.DefaultPortfolio(),
	})

	if flagOutput == "" {
		return scenario.Encode(cmd.OutOrStdout(), doc, scenario.Format(flagFormat))
	}

	f, err := os.Create(flagOutput)
	if err != nil {
		return fmt.Errorf("create %s: %w", flagOutput, err)
	}
	if err := scenario.Encode(f, doc, scenario.Format(flagFormat)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
