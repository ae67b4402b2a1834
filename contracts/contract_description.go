package contracts

// ContractDescription describes a compiled contract found in the artifacts of a project.
type ContractDescription struct {
	// SourceName is the source file the contract is declared in, e.g. "contracts/Token.sol".
	SourceName string

	// ContractName is the declared name of the contract.
	ContractName string

	// BuildInfoFile is the base name of the build-info document which holds the contract's compiler output. It is
	// empty when the project has a single build-info document.
	BuildInfoFile string

	// ConflictedName indicates that another contract in the project declares the same ContractName.
	ConflictedName bool
}

// UniqueName returns the "Name:path/to/File.sol" form which identifies the contract across the project.
func (c ContractDescription) UniqueName() string {
	return c.ContractName + ":" + c.SourceName
}

// FullyQualifiedName returns the "path/to/File.sol:Name" form used by the artifact store.
func (c ContractDescription) FullyQualifiedName() string {
	return c.SourceName + ":" + c.ContractName
}

// PrintName returns the bare contract name, or the unique name if the contract name is not unique within the
// project.
func (c ContractDescription) PrintName() string {
	if c.ConflictedName {
		return c.UniqueName()
	}
	return c.ContractName
}

// BelongsTo indicates whether the contract's compiler output is expected in the build-info document with the given
// base name. Contracts without a build-info association belong to every document.
func (c ContractDescription) BelongsTo(buildInfoFileName string) bool {
	return c.BuildInfoFile == "" || c.BuildInfoFile == buildInfoFileName
}
