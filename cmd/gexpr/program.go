package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/gexpr/compiler"
	"github.com/npillmayer/gexpr/lang/arith"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newProgramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "program expression",
		Short: "Show the compiled form of an arithmetic expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := arith.Compile(joinArgs(args), true)
			if err != nil {
				return err
			}
			s, err := programTable(prog)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}
}

// programTable renders a program as a table, one row per instruction.
func programTable(prog *compiler.Program) (string, error) {
	data := pterm.TableData{{"#", "Token", "Role", "Type", "Position"}}
	for i, ct := range prog.Code {
		data = append(data, []string{
			strconv.Itoa(i),
			ct.Lexeme,
			ct.Role.String(),
			ct.TypeID().String(),
			ct.Loc.String(),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}
