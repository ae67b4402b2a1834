package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/crytic/solinspect/cmd/exitcodes"
	"github.com/crytic/solinspect/compilation"
	"github.com/crytic/solinspect/logging/colors"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// selectionsCmd represents the command provider for patching compiler output selections
var selectionsCmd = &cobra.Command{
	Use:   "selections <standard-json-input>",
	Short: "Adds the compiler outputs needed by the reports to a standard JSON input",
	Long: `Adds the compiler outputs needed by the sizes and storage-layout reports to the output selection of a solc
standard JSON input file. Outputs which are already selected are kept as they are.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: cmdValidUnusedFlags,
	RunE:              cmdRunSelections,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the selections command
	err := addSelectionsFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the selections command", err)
	}

	// Add the selections command and its associated flags to the root command
	rootCmd.AddCommand(selectionsCmd)
}

// cmdRunSelections executes the CLI selections command
func cmdRunSelections(cmd *cobra.Command, args []string) error {
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		cmdLogger.Error("Failed to run the selections command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	inputPath := args[0]
	b, err := patchStandardJSONInput(inputPath)
	if err != nil {
		cmdLogger.Error("Failed to run the selections command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	if toStdout {
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	}

	err = os.WriteFile(inputPath, b, 0644)
	if err != nil {
		cmdLogger.Error("Failed to run the selections command", errors.WithStack(err))
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	cmdLogger.Info("Output selections added to: ", colors.Bold, inputPath, colors.Reset)
	return nil
}

// patchStandardJSONInput reads the standard JSON input at the given path and returns it with the output selections
// of both reports added.
func patchStandardJSONInput(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var input map[string]any
	if err = json.Unmarshal(b, &input); err != nil {
		return nil, errors.Wrapf(err, "could not parse standard JSON input %s", path)
	}
	if input == nil {
		return nil, errors.Errorf("standard JSON input %s is not an object", path)
	}

	if err = compilation.ConfigureStandardJSONInput(input); err != nil {
		return nil, errors.Wrapf(err, "could not patch standard JSON input %s", path)
	}

	b, err = json.MarshalIndent(input, "", "  ")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}
