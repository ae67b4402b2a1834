package cmd

import (
	"fmt"

	"github.com/crytic/solinspect/cmd/exitcodes"
	"github.com/crytic/solinspect/compilation"
	"github.com/crytic/solinspect/compilation/types"
	"github.com/crytic/solinspect/config"
	"github.com/crytic/solinspect/logging"
	"github.com/crytic/solinspect/reporting"
	"github.com/crytic/solinspect/sizing"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// sizesCmd represents the command provider for the contract sizes report
var sizesCmd = &cobra.Command{
	Use:   "sizes [contracts...]",
	Short: "Prints the size of contracts",
	Long: `Prints the size of contracts, including the contribution of source files into the bytecode of a contract.

Contracts can be selected by name or by fully qualified name (e.g. contracts/Token.sol:Token).`,
	ValidArgsFunction: cmdValidUnusedFlags,
	RunE:              cmdRunSizes,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the sizes command
	err := addSizesFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the sizes command", err)
	}

	// Add the sizes command and its associated flags to the root command
	rootCmd.AddCommand(sizesCmd)
}

// cmdRunSizes executes the CLI sizes command
func cmdRunSizes(cmd *cobra.Command, args []string) error {
	projectConfig, err := loadProjectConfig(cmd, updateProjectConfigWithSizesFlags)
	if err != nil {
		cmdLogger.Error("Failed to run the sizes command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	release, err := setupLogging(projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the sizes command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	defer release()

	err = reportSizes(cmd, args, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the sizes command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	return nil
}

// reportSizes resolves the selected contracts, attributes their bytecode to source files and prints the sizes table.
func reportSizes(cmd *cobra.Command, args []string, projectConfig *config.ProjectConfig) error {
	out := cmd.OutOrStdout()

	verbose, err := cmd.Flags().GetBool("details")
	if err != nil {
		return err
	}
	alnum, err := cmd.Flags().GetBool("alnum")
	if err != nil {
		return err
	}
	diff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return err
	}
	onlyModified, err := cmd.Flags().GetBool("changes")
	if err != nil {
		return err
	}
	showMetadata, err := cmd.Flags().GetBool("metadata")
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
		matching := ""
		if filter != nil {
			matching = " and matching the filter"
		}
		fmt.Fprintf(out, "No contracts found.\nPlease make sure that contracts are compiled%s.\n", matching)
		return nil
	}

	mappings, err := sizing.ExtractBytecodeMappings(documents, descriptions)
	if errors.Is(err, types.ErrBuildInconsistency) {
		logging.GlobalLogger.Debug("Artifacts do not match the build info", err)
		printInconsistencyWarning(out)
		return nil
	} else if err != nil {
		return err
	}

	// Load the sizes of the previous run before replacing them with the current ones
	var previous sizing.StoredCodeMappings
	if diff || onlyModified {
		compilation.NotifyArtifactHashStatus(documents, projectConfig.Artifacts.CacheDirectory, logging.GlobalLogger)

		store, err := sizing.NewSnapshotStore(projectConfig.Sizes.SnapshotFormat, projectConfig.SnapshotPath())
		if err != nil {
			return err
		}
		previous, err = store.Load()
		if err != nil {
			return err
		}
		err = store.Save(mappings)
		if err != nil {
			return err
		}
	}

	reporting.SortCodeMappings(mappings, alnum)
	table := reporting.SizesTable(mappings, reporting.SizesTableOptions{
		MinSize:         projectConfig.Sizes.MinSize,
		MaxContractSize: projectConfig.Sizes.MaxContractSize,
		Verbose:         verbose,
		Previous:        previous,
		OnlyModified:    onlyModified,
		ShowMetadata:    showMetadata,
	})
	if table.Len() == 0 {
		changed := ""
		if onlyModified {
			changed = " and with size(s) changed"
		}
		fmt.Fprintf(out, "There are no contracts exceeding %s bytes%s.\n", reporting.FormatSize(projectConfig.Sizes.MinSize), changed)
		return nil
	}

	table.Render(out)
	return nil
}
