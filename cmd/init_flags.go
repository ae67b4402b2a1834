package cmd

import (
	"github.com/crytic/solinspect/config"
	"github.com/spf13/cobra"
)

// addInitFlags adds the various flags for the init command
func addInitFlags() error {
	// Output path for configuration
	initCmd.Flags().String("out", "", "output path for the new project configuration file")

	// Artifacts directory
	initCmd.Flags().String("artifacts", "", "directory holding the compilation artifacts, relative to the configuration file")

	// Cache directory
	initCmd.Flags().String("cache", "", "directory in which the size snapshot is kept, relative to the configuration file")

	// Snapshot format
	initCmd.Flags().String("snapshot-format", "", "format of the size snapshot, json or bolt")

	return nil
}

// updateProjectConfigWithInitFlags will update the given projectConfig with any CLI arguments that were provided to the init command
func updateProjectConfigWithInitFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// Update artifacts directory
	if cmd.Flags().Changed("artifacts") {
		projectConfig.Artifacts.ArtifactsDirectory, err = cmd.Flags().GetString("artifacts")
		if err != nil {
			return err
		}
	}

	// Update cache directory
	if cmd.Flags().Changed("cache") {
		projectConfig.Artifacts.CacheDirectory, err = cmd.Flags().GetString("cache")
		if err != nil {
			return err
		}
	}

	// Update snapshot format
	if cmd.Flags().Changed("snapshot-format") {
		projectConfig.Sizes.SnapshotFormat, err = cmd.Flags().GetString("snapshot-format")
		if err != nil {
			return err
		}
	}

	return projectConfig.Validate()
}
