package cmd

import (
	"fmt"

	"github.com/crytic/solinspect/config"
	"github.com/spf13/cobra"
)

// addSizesFlags adds the various flags for the sizes command
func addSizesFlags() error {
	// Get the default project config
	defaultConfig := config.GetDefaultProjectConfig()

	addProjectConfigFlags(sizesCmd)

	// Report shape
	sizesCmd.Flags().Bool("details", false, "print the contribution of each source file into the bytecode of a contract")
	sizesCmd.Flags().Bool("alnum", false, "sort contracts by name instead of by code size")
	sizesCmd.Flags().Bool("metadata", false, "print the compiler version and bytecode hash kind recorded in the contract metadata")

	// Size differences
	sizesCmd.Flags().Bool("diff", false, "print the size difference with the previous run with this flag")
	sizesCmd.Flags().Bool("changes", false, "print only contracts with size changes, implies --diff")

	// Size thresholds
	sizesCmd.Flags().Int("size", 0,
		fmt.Sprintf("only print contracts with at least this many bytes of code and init code (unless a config file is provided, default is %d)", defaultConfig.Sizes.MinSize))
	sizesCmd.Flags().Int("maxsize", 0,
		fmt.Sprintf("sizes above this limit are shown in red, above 85%% of it in yellow (unless a config file is provided, default is %d)", defaultConfig.Sizes.MaxContractSize))

	// Contract filter
	sizesCmd.Flags().StringSlice("exclude", []string{}, "contracts to leave out, names or fully qualified names")

	return nil
}

// updateProjectConfigWithSizesFlags will update the given projectConfig with any CLI arguments that were provided to
// the sizes command
func updateProjectConfigWithSizesFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// Update min size
	if cmd.Flags().Changed("size") {
		projectConfig.Sizes.MinSize, err = cmd.Flags().GetInt("size")
		if err != nil {
			return err
		}
	}

	// Update max contract size
	if cmd.Flags().Changed("maxsize") {
		projectConfig.Sizes.MaxContractSize, err = cmd.Flags().GetInt("maxsize")
		if err != nil {
			return err
		}
	}
	return nil
}
