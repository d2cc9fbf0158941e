package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simaogato/wealthflow-planner/internal/logging"
	"github.com/simaogato/wealthflow-planner/internal/scenario"
	"github.com/simaogato/wealthflow-planner/internal/usecase/planner"
)

var (
	flagEvery     int
	flagLoanEvery int
	flagTaxed     bool
	flagLogLevel  string
)

var rootCmd = &cobra.Command{
	Use:           "planner",
	Short:         "Personal finance projection CLI",
	Long:          "Project net worth, loan schedules and stock contributions for a scenario file.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

// calculate loads a scenario file and computes its plan without a cache
func calculate(ctx context.Context, path string) (planner.PlanRequest, *planner.PlanResult, error) {
	req, err := scenario.Load(path)
	if err != nil {
		return planner.PlanRequest{}, nil, err
	}

	logger := logging.NewWithWriter(logging.Config{Level: flagLogLevel, Format: "text"}, os.Stderr)
	result, err := planner.NewPlannerService(nil, nil, logger).CalculatePlan(ctx, req)
	if err != nil {
		return planner.PlanRequest{}, nil, err
	}
	return req, result, nil
}
