package cmd

// DefaultProjectConfigFilename describes the default config filename for a given project folder.
const DefaultProjectConfigFilename = "solinspect.json"

// DefaultCompilationPlatform describes the default compilation platform to use if one is not provided
const DefaultCompilationPlatform = "hardhat"

// logFileTimeFormat is the time layout used in the names of log files.
const logFileTimeFormat = "2006-01-02-15-04-05"
