package cmd

// addStorageLayoutFlags adds the various flags for the storage-layout command
func addStorageLayoutFlags() error {
	addProjectConfigFlags(storageLayoutCmd)

	// Report shape
	storageLayoutCmd.Flags().Bool("details", false, "print the source file of each variable")
	storageLayoutCmd.Flags().Bool("summary", false, "print one row per contract with its variable and slot counts and the contract whose layout it extends")

	// Contract filter
	storageLayoutCmd.Flags().StringSlice("exclude", []string{}, "contracts to leave out, names or fully qualified names")

	return nil
}
