package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/peelonet/tempearly"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Tempearly session",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl(os.Stdin, os.Stdout)
			return nil
		},
	}
}

// runRepl implements a stdin line-buffered REPL that goes multi-line
// whenever a delimiter is left open: lines are accumulated until every
// {% %}/{{ }}/{! !} tag opened so far has a matching close, then the
// buffer is parsed and executed as one template against a persistent
// Interpreter so declarations and classes survive across lines.
func runRepl(in *os.File, out *os.File) {
	interp := tempearly.NewInterpreter(out)
	scanner := bufio.NewScanner(in)
	var buf strings.Builder

	prompt := func() {
		if buf.Len() == 0 {
			fmt.Fprint(out, ">> ")
		} else {
			fmt.Fprint(out, ".. ")
		}
	}

	prompt()
	for scanner.Scan() {
		buf.WriteString(scanner.Text())
		buf.WriteString("\n")

		if tagsBalanced(buf.String()) {
			src := buf.String()
			buf.Reset()
			evalLine(interp, src)
		}
		prompt()
	}
	fmt.Fprintln(out)
}

// tagsBalanced reports whether every opened {%/{{/{! has a matching
// close, the signal the REPL uses to decide a line is complete.
func tagsBalanced(src string) bool {
	depth := 0
	for i := 0; i < len(src); i++ {
		if i+1 >= len(src) {
			break
		}
		switch src[i : i+2] {
		case "{%", "{{", "{!":
			depth++
			i++
		case "%}", "}}", "!}":
			depth--
			i++
		}
	}
	return depth <= 0
}

func evalLine(interp *tempearly.Interpreter, src string) {
	tpl, err := tempearly.Parse("<repl>", src)
	if err != nil {
		fmt.Fprintln(os.Stdout, err)
		return
	}
	res := tpl.Execute(interp)
	if res.Kind != tempearly.RError {
		return
	}
	if exc, ok := tempearly.ExceptionValue(res.Err); ok {
		class := interp.ClassOf(exc)
		msg, _ := interp.Stringify(exc)
		fmt.Fprintf(os.Stdout, "%s: %s\n", class.Name, msg)
		return
	}
	fmt.Fprintln(os.Stdout, res.Err)
}
