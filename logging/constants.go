package logging

// These constants are the keys used for the context fields attached to sub-loggers
const (
	// SERVICE_KEY is the key under which the emitting service is recorded
	SERVICE_KEY = "service"
	// RUN_KEY is the key under which the invocation's unique run identifier is recorded
	RUN_KEY = "run"
)

// These constants are used to identify the various services that may do some logging
const (
	// COMPILATION_SERVICE is the constant used to identify the compilation packages
	COMPILATION_SERVICE = "compilation"
	// ANALYSIS_SERVICE is the constant used to identify the sizing and layout packages
	ANALYSIS_SERVICE = "analysis"
	// CLI_SERVICE is the constant used to identify the cmd package
	CLI_SERVICE = "cli"
)
