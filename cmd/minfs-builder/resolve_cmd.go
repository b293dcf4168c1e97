package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createResolveCommand creates the resolve subcommand
func createResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve PACKAGE...",
		Short: "Resolve package names to canonical specifiers",
		Args:  cobra.MinimumNArgs(1),
		RunE:  executeResolve,
	}
}

func executeResolve(cmd *cobra.Command, args []string) error {
	h, err := selectBackend()
	if err != nil {
		return err
	}

	missing := 0
	for _, raw := range args {
		handle, ok, err := h.Resolve(raw)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not installed\n", raw)
			missing++
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), h.Format(handle))
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d packages not installed", missing, len(args))
	}
	return nil
}
