package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/gexpr/lang/textfmt"
	"github.com/spf13/cobra"
)

func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format template [argument...]",
		Short: "Format a text template",
		Long: `Format replaces placeholders {0}, {1}, … of a template by the arguments.
With --named, arguments are given as name=value and replace placeholders {name}.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFormat,
	}
	cmd.Flags().Bool("strict", false, "report missing arguments and malformed placeholders")
	cmd.Flags().Bool("named", false, "arguments are name=value pairs")
	return cmd
}

func runFormat(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	named, _ := cmd.Flags().GetBool("named")
	compile := textfmt.Compile
	if strict {
		compile = textfmt.CompileStrict
	}
	tmpl, err := compile(args[0])
	if err != nil {
		return err
	}
	var s string
	if named {
		m, err := namedArgs(args[1:])
		if err != nil {
			return err
		}
		s, err = tmpl.FormatNamed(m)
		if err != nil {
			return err
		}
	} else {
		positional := make([]interface{}, len(args)-1)
		for i, a := range args[1:] {
			positional[i] = a
		}
		if s, err = tmpl.Format(positional...); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
	return err
}

func namedArgs(args []string) (map[string]interface{}, error) {
	m := make(map[string]interface{}, len(args))
	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("format: argument %q is not of the form name=value", a)
		}
		m[name] = value
	}
	return m, nil
}
