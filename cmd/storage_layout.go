package cmd

import (
	"fmt"

	"github.com/crytic/solinspect/cmd/exitcodes"
	"github.com/crytic/solinspect/compilation/types"
	"github.com/crytic/solinspect/config"
	"github.com/crytic/solinspect/layout"
	"github.com/crytic/solinspect/logging"
	"github.com/crytic/solinspect/reporting"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// storageLayoutCmd represents the command provider for the storage layout report
var storageLayoutCmd = &cobra.Command{
	Use:   "storage-layout [contracts...]",
	Short: "Prints the storage layout of contracts",
	Long: `Prints the storage layout of contracts.

Contracts can be selected by name or by fully qualified name (e.g. contracts/Token.sol:Token).`,
	ValidArgsFunction: cmdValidUnusedFlags,
	RunE:              cmdRunStorageLayout,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the storage-layout command
	err := addStorageLayoutFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the storage-layout command", err)
	}

	// Add the storage-layout command and its associated flags to the root command
	rootCmd.AddCommand(storageLayoutCmd)
}

// cmdRunStorageLayout executes the CLI storage-layout command
func cmdRunStorageLayout(cmd *cobra.Command, args []string) error {
	projectConfig, err := loadProjectConfig(cmd, nil)
	if err != nil {
		cmdLogger.Error("Failed to run the storage-layout command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	release, err := setupLogging(projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the storage-layout command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	defer release()

	err = reportStorageLayouts(cmd, args, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the storage-layout command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	return nil
}

// reportStorageLayouts resolves the selected contracts and prints their storage layouts.
func reportStorageLayouts(cmd *cobra.Command, args []string, projectConfig *config.ProjectConfig) error {
	out := cmd.OutOrStdout()

	sourceFiles, err := cmd.Flags().GetBool("details")
	if err != nil {
		return err
	}
	summary, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return err
	}

	filter, err := contractFilterFromArgs(cmd, args)
	if err != nil {
		return err
	}
	descriptions, documents, err := resolveContracts(projectConfig, filter)
	if err != nil {
		return err
	}
	if len(descriptions) == 0 {
		fmt.Fprintln(out, "No contracts found")
		return nil
	}

	layouts, err := layout.ExtractContractLayouts(documents, descriptions, sourceFiles)
	if errors.Is(err, types.ErrBuildInconsistency) {
		logging.GlobalLogger.Debug("Artifacts do not match the build info", err)
		printInconsistencyWarning(out)
		return nil
	} else if err != nil {
		return err
	}

	reporting.SortStorageLayouts(layouts)
	table := reporting.StorageLayoutTable(layouts, sourceFiles)
	if summary {
		table, err = reporting.StorageLayoutSummaryTable(layouts)
		if err != nil {
			return err
		}
	}
	table.Render(out)
	return nil
}
