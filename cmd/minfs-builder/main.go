package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-edge-platform/minfs-builder/internal/utils/logger"

	// Register the concrete package backends.
	_ "github.com/open-edge-platform/minfs-builder/internal/handler/pacman"
)

// Global command flags
var (
	logLevel    string
	verbose     bool
	backendName string
	tmpDir      string
	packagerCfg string
)

func main() {
	rootCmd := createRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// createRootCommand assembles the CLI
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minfs-builder",
		Short: "Build minimal filesystems from installed packages",
		Long: `minfs-builder enumerates installed software packages, resolves their
transitive dependencies, lists the files they own, and fetches and unpacks
their binary payloads by driving the host's package-management toolchain.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Shorthand for --log-level debug")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "",
		"Package backend to use (default: autodetect)")
	rootCmd.PersistentFlags().StringVar(&tmpDir, "tmp-dir", "",
		"Scratch-directory root for downloads")
	rootCmd.PersistentFlags().StringVar(&packagerCfg, "packager-config", "",
		"Packager configuration file handed to fetch commands")

	rootCmd.AddCommand(createDetectCommand())
	rootCmd.AddCommand(createResolveCommand())
	rootCmd.AddCommand(createClosureCommand())
	rootCmd.AddCommand(createFilesCommand())
	rootCmd.AddCommand(createDownloadCommand())
	rootCmd.AddCommand(createBuildCommand())
	rootCmd.AddCommand(createVersionCommand())

	attachLoggingHooks(rootCmd)
	return rootCmd
}

// resolveRequestedLogLevel prefers an explicit --log-level over the
// --verbose shorthand. Empty means "use the configured default".
func resolveRequestedLogLevel(cmd *cobra.Command) string {
	if logLevel != "" {
		return logLevel
	}
	if cmd != nil {
		if flag := cmd.Flags().Lookup("verbose"); flag != nil && flag.Changed {
			if on, err := cmd.Flags().GetBool("verbose"); err == nil && on {
				return "debug"
			}
		}
	}
	return ""
}

// attachLoggingHooks ensures the logger is initialized before any
// subcommand runs.
func attachLoggingHooks(rootCmd *cobra.Command) {
	for _, cmd := range rootCmd.Commands() {
		cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
			level := resolveRequestedLogLevel(cmd)
			if level == "" {
				level = "info"
			}
			return logger.Init(level)
		}
	}
}
