package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/crytic/solinspect/config"
	"github.com/crytic/solinspect/logging/colors"
	"github.com/spf13/cobra"
)

// addProjectConfigFlags adds the flags shared by every command which reads the project configuration.
func addProjectConfigFlags(cmd *cobra.Command) {
	// Config file
	cmd.Flags().String("config", "", "path to config file")

	// Artifacts directory
	cmd.Flags().String("artifacts", "", fmt.Sprintf("path to the directory holding the compilation artifacts (unless a config file is provided, default is %q)", config.GetDefaultProjectConfig().Artifacts.ArtifactsDirectory))

	// Disable colors
	cmd.Flags().Bool("no-color", false, "disables colored output")
}

// loadProjectConfig resolves the project configuration for a command and navigates through the following
// possibilities:
// #1: We will search for either a custom config file (via --config) or the default (solinspect.json).
// If we find it, read it. If we can't read it, throw an error.
// #2: If a custom file was provided (--config was used), and we can't find the file, throw an error.
// #3: If solinspect.json can't be found, use the default project configuration.
// Flags shared by all commands, followed by the command's own flags applied by updateWithFlags (if non-nil), override
// the configuration, which is then validated. The working directory is changed to the directory of the configuration
// file, as paths within it are relative to that directory.
func loadProjectConfig(cmd *cobra.Command, updateWithFlags func(*cobra.Command, *config.ProjectConfig) error) (*config.ProjectConfig, error) {
	var projectConfig *config.ProjectConfig

	// Check to see if --config flag was used and store the value of --config flag
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If --config was not used, look for `solinspect.json` in the current work directory
	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	// Check to see if the file exists at configPath
	_, existenceError := os.Stat(configPath)

	if existenceError == nil {
		// Possibility #1: File was found
		cmdLogger.Debug("Reading the configuration file at: ", colors.Bold, configPath, colors.Reset)
		projectConfig, err = config.ReadProjectConfigFromFile(configPath)
		if err != nil {
			return nil, err
		}
	} else if configFlagUsed {
		// Possibility #2: If the --config flag was used, and we couldn't find the file, we'll throw an error
		return nil, existenceError
	} else {
		// Possibility #3: --config flag was not used and solinspect.json was not found, so use the default project config
		cmdLogger.Debug(fmt.Sprintf("Unable to find the config file at %v, will use the default project configuration for the "+
			"%v compilation platform instead", configPath, DefaultCompilationPlatform))
		projectConfig = config.GetDefaultProjectConfig()
	}

	// Update the project configuration given the flags shared by all commands
	err = updateProjectConfigWithCommonFlags(cmd, projectConfig)
	if err != nil {
		return nil, err
	}
	if updateWithFlags != nil {
		err = updateWithFlags(cmd, projectConfig)
		if err != nil {
			return nil, err
		}
	}

	// Change our working directory to the parent directory of the project configuration file
	err = os.Chdir(filepath.Dir(configPath))
	if err != nil {
		return nil, err
	}

	err = projectConfig.Validate()
	if err != nil {
		return nil, err
	}
	return projectConfig, nil
}

// updateProjectConfigWithCommonFlags will update the given projectConfig with the flags added by
// addProjectConfigFlags.
func updateProjectConfigWithCommonFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// Update artifacts directory
	if cmd.Flags().Changed("artifacts") {
		artifactsDirectory, err := cmd.Flags().GetString("artifacts")
		if err != nil {
			return err
		}

		// The flag is relative to where the command was invoked, not to the config file
		projectConfig.Artifacts.ArtifactsDirectory, err = filepath.Abs(artifactsDirectory)
		if err != nil {
			return err
		}
	}

	// Update color output
	if cmd.Flags().Changed("no-color") {
		projectConfig.Logging.NoColor, err = cmd.Flags().GetBool("no-color")
		if err != nil {
			return err
		}
	}
	return nil
}
