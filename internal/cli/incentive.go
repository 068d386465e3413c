package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"payslip/internal/domain/payroll"
	"payslip/internal/domain/payslip"
)

func (c *CLI) newIncentiveCmd() *cobra.Command {
	var input string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "incentive",
		Short: "Compute the slab incentive for a sales file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(input)
			if err != nil {
				return err
			}
			defer f.Close()

			var in payroll.IncentiveInput
			if err := payslip.Decode(f, payslip.FormatFromPath(input), &in); err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			cfg := in.Config
			if cfg.Empty() {
				cfg = c.cfg.Defaults.Payroll
			}
			summary := payroll.Summarize(payroll.TeamSales(in.Records, in.Subordinates...), cfg)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			fmt.Fprintf(out, "records:     %d\n", summary.Records)
			fmt.Fprintf(out, "gross sales: %s\n", summary.GrossSales.StringFixed(2))
			fmt.Fprintf(out, "net sales:   %s\n", summary.NetSales.StringFixed(2))
			fmt.Fprintf(out, "incentive:   %s\n", summary.Incentive.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "sales file (.json, .yaml or .toml)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
