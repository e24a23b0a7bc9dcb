package main

import (
	"fmt"

	"github.com/npillmayer/gexpr/lang/units"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newUnitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units expression",
		Short: "Evaluate an expression with units",
		Long: `Units evaluates an expression with quantities, e.g. "5km + 300m in mi".
Units are taken from a built-in table or from a TOML file.`,
		RunE: runUnits,
	}
	cmd.Flags().String("table", "", "TOML file with unit definitions")
	cmd.Flags().Bool("list", false, "list the known units")
	return cmd
}

func runUnits(cmd *cobra.Command, args []string) error {
	table := units.DefaultTable()
	if path, _ := cmd.Flags().GetString("table"); path != "" {
		t, err := units.LoadTable(path)
		if err != nil {
			return err
		}
		table = t
	}
	if list, _ := cmd.Flags().GetBool("list"); list {
		return listUnits(cmd, table)
	}
	if len(args) == 0 {
		return fmt.Errorf("units: missing expression")
	}
	q, err := units.NewConverter(table).Evaluate(joinArgs(args))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), q)
	return err
}

func listUnits(cmd *cobra.Command, table *units.Table) error {
	data := pterm.TableData{{"Symbol", "Name", "Dimension", "Factor"}}
	for _, u := range table.Units() {
		data = append(data, []string{u.Symbol, u.Name, string(u.Dimension), formatNumber(u.Factor)})
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
	return err
}
