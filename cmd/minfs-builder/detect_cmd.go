package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-edge-platform/minfs-builder/internal/handler"
	"github.com/open-edge-platform/minfs-builder/internal/utils/logger"
	"github.com/open-edge-platform/minfs-builder/internal/utils/system"
)

// createDetectCommand creates the detect subcommand
func createDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Report the host distribution and the selected package backend",
		Args:  cobra.NoArgs,
		RunE:  executeDetect,
	}
}

func executeDetect(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	info, err := system.DetectOsDistribution()
	if err != nil {
		log.Warnf("host distribution detection failed: %v", err)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "host: %s %s (%s)\n", info.Name, info.Version, info.Arch)
	}

	h, err := handler.Detect()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "backend: %s\n", h.Name())

	mtime, err := h.DBModTime()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "package database last modified: %s\n", mtime.Format("2006-01-02 15:04:05"))
	return nil
}
