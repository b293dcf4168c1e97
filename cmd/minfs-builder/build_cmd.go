package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-edge-platform/minfs-builder/internal/config"
	"github.com/open-edge-platform/minfs-builder/internal/utils/logger"
)

// createBuildCommand creates the build subcommand
func createBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build MANIFEST_FILE",
		Short: "Build a minimal filesystem from a package manifest",
		Long: `Build resolves the packages listed in a YAML manifest, closes over
their transitive dependencies and unpacks every payload into the manifest's
output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: executeBuild,
	}
}

func executeBuild(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	manifest, err := config.LoadManifest(args[0])
	if err != nil {
		return err
	}
	log.Infof("building %s from %d seed packages", manifest.Output, len(manifest.Packages))

	h, err := selectBackend()
	if err != nil {
		return err
	}

	set, err := resolveSet(h, manifest.Packages)
	if err != nil {
		return err
	}

	closed, err := h.CloseRequires(set)
	if err != nil {
		return err
	}
	log.Infof("closure holds %d packages", len(closed))

	entries, err := h.ListFiles(closed)
	if err != nil {
		return err
	}
	configCount := 0
	for _, e := range entries {
		if e.Config {
			configCount++
		}
	}
	log.Infof("packages own %d files (%d configuration)", len(entries), configCount)

	if err := h.Download(closed, manifest.Output); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "built %s: %d packages, %d files\n",
		manifest.Output, len(closed), len(entries))
	return nil
}
