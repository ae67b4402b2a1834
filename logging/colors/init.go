package colors

// enabled describes whether ANSI coloring is currently applied by Colorize.
var enabled bool

// init will ensure that ANSI coloring is enabled on Windows and Unix systems. Note that ANSI coloring is enabled by
// default on Unix system and Windows needs specific kernel calls for enablement
func init() {
	EnableColor()
}

// DisableColor turns off colorization for all subsequent Colorize calls, e.g. when output is piped or --no-color is
// provided.
func DisableColor() {
	enabled = false
}

// IsEnabled reports whether colorization is currently enabled.
func IsEnabled() bool {
	return enabled
}
