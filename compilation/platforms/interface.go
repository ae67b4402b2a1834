package platforms

import "github.com/crytic/solinspect/compilation/types"

// ArtifactStore describes a read-only provider of compilation results that a compilation platform has already
// written to disk: contract artifacts, their debug companion files and the build-info documents.
type ArtifactStore interface {
	// Platform returns the identifier of the compilation platform which produced the artifacts.
	Platform() string

	// FullyQualifiedNames returns the fully qualified names ("sourceName:ContractName") of all known contracts,
	// sorted.
	FullyQualifiedNames() ([]string, error)

	// ReadArtifact reads the artifact of the contract with the given fully qualified name.
	ReadArtifact(fullyQualifiedName string) (*types.ContractArtifact, error)

	// ReadDebugFile reads the debug companion file of the contract with the given fully qualified name.
	ReadDebugFile(fullyQualifiedName string) (*types.ArtifactDebugFile, error)

	// BuildInfoPaths returns the paths of all build-info documents, sorted.
	BuildInfoPaths() ([]string, error)

	// ReadBuildInfo reads the build-info document at the given path.
	ReadBuildInfo(path string) (*types.BuildInfo, error)
}

// LoadBuildInfoDocuments reads every build-info document of the store once.
func LoadBuildInfoDocuments(store ArtifactStore) ([]types.BuildInfoDocument, error) {
	paths, err := store.BuildInfoPaths()
	if err != nil {
		return nil, err
	}

	documents := make([]types.BuildInfoDocument, 0, len(paths))
	for _, path := range paths {
		info, err := store.ReadBuildInfo(path)
		if err != nil {
			return nil, err
		}
		documents = append(documents, types.BuildInfoDocument{Path: path, Info: info})
	}
	return documents, nil
}
