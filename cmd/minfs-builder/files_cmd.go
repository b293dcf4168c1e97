package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var filesWithClosure bool

// createFilesCommand creates the files subcommand
func createFilesCommand() *cobra.Command {
	filesCmd := &cobra.Command{
		Use:   "files PACKAGE...",
		Short: "List every file owned by the given packages",
		Long: `List every file owned by the given packages, one path per line.
Configuration files are marked with a trailing " (config)".`,
		Args: cobra.MinimumNArgs(1),
		RunE: executeFiles,
	}
	filesCmd.Flags().BoolVar(&filesWithClosure, "closure", false,
		"Include files of all transitive dependencies")
	return filesCmd
}

func executeFiles(cmd *cobra.Command, args []string) error {
	h, err := selectBackend()
	if err != nil {
		return err
	}

	set, err := resolveSet(h, args)
	if err != nil {
		return err
	}
	if filesWithClosure {
		if set, err = h.CloseRequires(set); err != nil {
			return err
		}
	}

	entries, err := h.ListFiles(set)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Config {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (config)\n", e.Path)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), e.Path)
		}
	}
	return nil
}
