package main

import (
	"fmt"
	"os"

	"github.com/peelonet/tempearly"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var baseDir string
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a template file, writing output to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0], baseDir)
		},
	}
	cmd.Flags().StringVar(&baseDir, "base-dir", "", "directory include()/import() resolve relative paths against")
	return cmd
}

func runFile(path, baseDir string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	tpl, err := tempearly.Parse(path, string(src))
	if err != nil {
		return err
	}
	i := tempearly.NewInterpreter(os.Stdout)
	if baseDir != "" {
		i.BaseDir = baseDir
	}
	res := tpl.Execute(i)
	if res.Kind == tempearly.RError {
		return res.Err
	}
	return nil
}
