package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-edge-platform/minfs-builder/internal/utils/logger"
)

var (
	downloadDest        string
	downloadWithClosure bool
)

// createDownloadCommand creates the download subcommand
func createDownloadCommand() *cobra.Command {
	downloadCmd := &cobra.Command{
		Use:   "download PACKAGE...",
		Short: "Fetch and unpack package payloads into a directory",
		Args:  cobra.MinimumNArgs(1),
		RunE:  executeDownload,
	}
	downloadCmd.Flags().StringVar(&downloadDest, "dest", "",
		"Destination directory for the unpacked payloads (required)")
	downloadCmd.Flags().BoolVar(&downloadWithClosure, "closure", false,
		"Also download all transitive dependencies")
	if err := downloadCmd.MarkFlagRequired("dest"); err != nil {
		panic(err)
	}
	return downloadCmd
}

func executeDownload(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	h, err := selectBackend()
	if err != nil {
		return err
	}

	set, err := resolveSet(h, args)
	if err != nil {
		return err
	}
	if downloadWithClosure {
		if set, err = h.CloseRequires(set); err != nil {
			return err
		}
	}

	if err := h.Download(set, downloadDest); err != nil {
		return err
	}
	log.Infof("unpacked %d packages into %s", len(set), downloadDest)
	fmt.Fprintf(cmd.OutOrStdout(), "unpacked %d packages into %s\n", len(set), downloadDest)
	return nil
}
