package cmd

import (
	"os"
	"time"

	"github.com/crytic/solinspect/config"
	"github.com/crytic/solinspect/logging"
	"github.com/crytic/solinspect/logging/colors"
	"github.com/crytic/solinspect/utils"
	"github.com/google/uuid"
)

// setupLogging replaces logging.GlobalLogger with a logger configured by the project configuration. Every event of the
// new logger carries a unique run identifier. If a log directory is configured, structured output is also written to a
// new log file within it.
// Returns a function which releases the log file, or an error if one occurs.
func setupLogging(projectConfig *config.ProjectConfig) (func(), error) {
	if projectConfig.Logging.NoColor {
		colors.DisableColor()
	}

	logger := logging.NewLogger(projectConfig.Logging.Level)
	logger.AddWriter(os.Stdout, logging.UNSTRUCTURED, !projectConfig.Logging.NoColor)

	release := func() {}
	if projectConfig.Logging.LogDirectory != "" {
		fileName := "solinspect-" + time.Now().Format(logFileTimeFormat) + ".log"
		file, err := utils.CreateFile(projectConfig.Logging.LogDirectory, fileName)
		if err != nil {
			return nil, err
		}
		logger.AddWriter(file, logging.STRUCTURED, false)
		release = func() {
			logging.GlobalLogger.RemoveWriter(file, logging.STRUCTURED, false)
			_ = file.Close()
		}
	}

	logging.GlobalLogger = logger.NewSubLogger(logging.RUN_KEY, uuid.NewString())
	return release, nil
}
