package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createClosureCommand creates the closure subcommand
func createClosureCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "closure PACKAGE...",
		Short: "Print the transitive dependency closure of the given packages",
		Args:  cobra.MinimumNArgs(1),
		RunE:  executeClosure,
	}
}

func executeClosure(cmd *cobra.Command, args []string) error {
	h, err := selectBackend()
	if err != nil {
		return err
	}

	set, err := resolveSet(h, args)
	if err != nil {
		return err
	}

	closed, err := h.CloseRequires(set)
	if err != nil {
		return err
	}

	for _, s := range sortedSpecifiers(h, closed) {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	return nil
}
