package cmd

import (
	"fmt"
	"io"

	"github.com/crytic/solinspect/compilation"
	"github.com/crytic/solinspect/compilation/platforms"
	"github.com/crytic/solinspect/compilation/types"
	"github.com/crytic/solinspect/config"
	"github.com/crytic/solinspect/contracts"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cmdValidUnusedFlags returns the flags of a command which have not been used yet, for dynamic completion.
func cmdValidUnusedFlags(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Gather a list of flags that are available to be used in the current command but have not been used yet
	var unusedFlags []string

	// Examine all the flags, and add any flags that have not been set in the current command line
	// to a list of unused flags
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			// When adding a flag to a command, include the "--" prefix to indicate that it is a flag
			// and not a positional argument.
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// contractFilterFromArgs creates a contract filter including the contracts named by the positional arguments and
// excluding the contracts named by the --exclude flag.
func contractFilterFromArgs(cmd *cobra.Command, args []string) (contracts.ContractFilter, error) {
	excludes, err := cmd.Flags().GetStringSlice("exclude")
	if err != nil {
		return nil, err
	}
	return contracts.NewContractFilter(args, excludes), nil
}

// resolveContracts resolves the contracts of the project which pass the filter, along with the build-info documents
// they were compiled in.
func resolveContracts(projectConfig *config.ProjectConfig, filter contracts.ContractFilter) ([]contracts.ContractDescription, []types.BuildInfoDocument, error) {
	store, err := compilation.NewArtifactStore(projectConfig.Artifacts.Platform, projectConfig.Artifacts.ArtifactsDirectory)
	if err != nil {
		return nil, nil, err
	}

	descriptions, err := contracts.Resolve(store, filter)
	if err != nil || len(descriptions) == 0 {
		return descriptions, nil, err
	}

	documents, err := platforms.LoadBuildInfoDocuments(store)
	if err != nil {
		return nil, nil, err
	}
	return descriptions, documents, nil
}

// printInconsistencyWarning tells the user that the artifacts and the build-info documents do not match and that the
// project has to be rebuilt.
func printInconsistencyWarning(out io.Writer) {
	const banner = "***********************************************************"
	for i := 0; i < 3; i++ {
		fmt.Fprintln(out, banner)
	}
	fmt.Fprintln(out, "\nThere is a mismatch between artifact and build files.")
	fmt.Fprint(out, "\nPlease run:\n\n")
	fmt.Fprint(out, "\t npm hardhat clean && npm hardhat compile\n\n")
	for i := 0; i < 3; i++ {
		fmt.Fprintln(out, banner)
	}
}
