package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simaogato/wealthflow-planner/internal/cli"
)

var loanCmd = &cobra.Command{
	Use:   "loan <scenario> <loan-name>",
	Short: "Print the amortization schedule of a loan",
	Args:  cobra.ExactArgs(2),
	RunE:  runLoan,
}

func init() {
	loanCmd.Flags().IntVarP(&flagLoanEvery, "every", "e", 1, "Print every N-th month")
	rootCmd.AddCommand(loanCmd)
}

func runLoan(cmd *cobra.Command, args []string) error {
	_, result, err := calculate(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	lp, ok := result.Plan.FindLoan(args[1])
	if !ok {
		return fmt.Errorf("no loan named %q in %s", args[1], args[0])
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTitle(lp.Loan.Name))
	fmt.Fprint(out, cli.RenderSummary(cli.LoanSummary(lp)))
	fmt.Fprintln(out)

	table := cli.LoanTable(lp, flagLoanEvery)
	table.Title = ""
	fmt.Fprint(out, cli.RenderTable(table))
	return nil
}
