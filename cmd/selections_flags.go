package cmd

// addSelectionsFlags adds the various flags for the selections command
func addSelectionsFlags() error {
	// Print instead of rewriting the input
	selectionsCmd.Flags().Bool("stdout", false, "print the patched standard JSON input instead of rewriting the file")

	return nil
}
