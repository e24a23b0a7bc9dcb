package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/gexpr/lang/arith"
	"github.com/spf13/cobra"
)

func newCalcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calc expression",
		Short: "Evaluate an arithmetic expression",
		Long: `Calc evaluates an arithmetic expression with operators + - * / % ^,
prefix operator sqrt and constants pi, e and phi.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := arith.EvaluateIn(joinArgs(args), arith.NewEnv())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatNumber(r))
			return err
		},
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
