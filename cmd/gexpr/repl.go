package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/gexpr/lang/arith"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive calculator",
		Long: `Repl starts an interactive calculator. Variables are kept from line
to line. Quit with <ctrl>D or :quit.`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
	cmd.Flags().String("init", "", "file with expressions to evaluate first")
	return cmd
}

func runRepl(cmd *cobra.Command, args []string) error {
	rl, err := readline.New("gexpr> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	intp := NewIntp(cmd.OutOrStdout())
	pterm.Info.Println("Welcome to the gexpr calculator")
	if initf, _ := cmd.Flags().GetString("init"); initf != "" {
		intp.loadInitFile(initf)
	}
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL(rl)
	return nil
}

// Intp is our interpreter object.
type Intp struct {
	env       *arith.Env
	out       io.Writer
	lastValue float64
}

// NewIntp creates an interpreter with an empty set of variables, printing
// results to out.
func NewIntp(out io.Writer) *Intp {
	return &Intp{
		env: arith.NewEnv(),
		out: out,
	}
}

func (intp *Intp) loadInitFile(filename string) {
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL(rl *readline.Instance) {
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Eval evaluates a line of input, which is either a command or an expression.
func (intp *Intp) Eval(line string) (quit bool, err error) {
	if strings.HasPrefix(line, ":") {
		return intp.Execute(line)
	}
	r, err := arith.EvaluateIn(line, intp.env)
	if err != nil {
		return false, err
	}
	intp.lastValue = r
	_, err = fmt.Fprintln(intp.out, formatNumber(r))
	return false, err
}

// Execute executes a REPL command.
func (intp *Intp) Execute(line string) (quit bool, err error) {
	cmd, rest, _ := strings.Cut(line, " ")
	switch cmd {
	case ":quit", ":q":
		return true, nil
	case ":vars":
		vars := intp.env.Variables()
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(intp.out, "%s = %s\n", name, formatNumber(vars[name]))
		}
	case ":reset":
		intp.env.Reset()
	case ":program":
		prog, err := arith.Compile(strings.TrimSpace(rest), true)
		if err != nil {
			return false, err
		}
		s, err := programTable(prog)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(intp.out, s)
	default:
		return false, fmt.Errorf("unknown command %s", cmd)
	}
	return false, nil
}
