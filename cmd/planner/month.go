package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/simaogato/wealthflow-planner/internal/cli"
)

var monthCmd = &cobra.Command{
	Use:   "month <scenario> <month>",
	Short: "Show every instrument's state in one month",
	Args:  cobra.ExactArgs(2),
	RunE:  runMonth,
}

func init() {
	rootCmd.AddCommand(monthCmd)
}

func runMonth(cmd *cobra.Command, args []string) error {
	month, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid month %q: %w", args[1], err)
	}

	_, result, err := calculate(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	breakdown, ok := result.Plan.Breakdown(month)
	if !ok {
		return fmt.Errorf("month %d is outside the plan (0..%d)", month, result.Plan.TotalMonths-1)
	}

	table := cli.Table{
		Headers: []string{"Instrument", "Kind", "Value", "Taxed", "Flow"},
	}
	for _, inst := range breakdown.Instruments {
		flow := inst.Contribution - inst.SellOff
		if inst.Principal != 0 || inst.Interest != 0 {
			flow = -(inst.Principal + inst.Interest)
		}
		table.Rows = append(table.Rows, []string{
			inst.Name,
			string(inst.Kind),
			cli.FormatAmount(inst.Value),
			cli.FormatAmount(inst.TaxedValue),
			cli.FormatAmount(flow),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTitle(cli.FormatMonth(month)))
	fmt.Fprint(out, cli.RenderTable(table))
	fmt.Fprint(out, cli.RenderSummary([][2]string{
		{"Net worth", cli.FormatAmount(breakdown.NetWorth)},
		{"Net worth (taxed)", cli.FormatAmount(breakdown.NetWorthTaxed)},
	}))
	return nil
}
