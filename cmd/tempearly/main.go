// Command tempearly is the host shell for the Tempearly template
// engine: a one-shot file runner, a REPL, and a dev HTTP server with
// live template reload.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "tempearly",
		Short: "Run, serve, or explore Tempearly templates",
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
