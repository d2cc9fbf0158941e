package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simaogato/wealthflow-planner/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Project net worth for a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjection,
}

func init() {
	runCmd.Flags().IntVarP(&flagEvery, "every", "e", 12, "Print every N-th month")
	runCmd.Flags().BoolVar(&flagTaxed, "taxed", false, "Report asset values net of tax on gains")
	rootCmd.AddCommand(runCmd)
}

func runProjection(cmd *cobra.Command, args []string) error {
	req, result, err := calculate(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s  |  %d months  |  fingerprint %s", req.Name, result.Plan.TotalMonths, result.Fingerprint[:12])
	if flagTaxed {
		title += "  |  taxed"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTitle(title))
	fmt.Fprint(out, cli.RenderTable(cli.NetWorthTable(result.Plan, flagEvery, flagTaxed)))
	return nil
}
