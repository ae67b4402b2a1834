package cmd

import (
	"os"

	"github.com/crytic/solinspect/logging"
	"github.com/crytic/solinspect/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "solinspect",
	Short:   "A Solidity build artifact inspector",
	Long:    "solinspect reports contract sizes and storage layouts from the build artifacts of a Solidity project",
	Version: version.GetInfo().Short(),
}

// cmdLogger is the logger used by the commands before the project configuration has been read.
var cmdLogger = logging.NewLogger(zerolog.InfoLevel)

func init() {
	cmdLogger.AddWriter(os.Stdout, logging.UNSTRUCTURED, true)
}

func Execute() error {
	return rootCmd.Execute()
}
