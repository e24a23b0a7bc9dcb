package main

import (
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gexpr",
		Short: "Evaluate expressions",
		Long: `gexpr evaluates arithmetic expressions, quantities with units and
text templates, and shows how expressions are compiled.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("trace")
			initTracing(level)
		},
	}
	root.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
	root.AddCommand(
		newCalcCmd(),
		newUnitsCmd(),
		newFormatCmd(),
		newProgramCmd(),
		newReplCmd(),
	)
	return root
}

// main starts the command tree. Errors have been reported by the commands,
// we just set the exit code.
func main() {
	initDisplay()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// initTracing routes all tracing to a Go logger with the level given by the user.
func initTracing(level string) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracer().SetTraceLevel(tracing.TraceLevelFromString(level))
	tracer().Debugf("trace level is %s", tracer().GetTraceLevel())
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
