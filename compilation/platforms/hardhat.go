package platforms

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/crytic/solinspect/compilation/types"
	"github.com/pkg/errors"
)

const (
	// HardhatPlatformId is the platform identifier of Hardhat artifact stores.
	HardhatPlatformId = "hardhat"

	// hardhatBuildInfoDirectory is the name of the directory, relative to the artifacts directory, which holds the
	// build-info documents.
	hardhatBuildInfoDirectory = "build-info"

	// hardhatArtifactFormatPrefix prefixes the _format field of every Hardhat contract artifact.
	hardhatArtifactFormatPrefix = "hh-sol-artifact"
)

// HardhatArtifactStore provides access to the artifacts Hardhat writes to its artifacts directory:
// <artifacts>/<sourceName>/<ContractName>.json, the matching .dbg.json debug files and <artifacts>/build-info/*.json.
type HardhatArtifactStore struct {
	// ArtifactsDirectory is the root artifacts directory.
	ArtifactsDirectory string
}

// NewHardhatArtifactStore returns a HardhatArtifactStore rooted at the given artifacts directory.
func NewHardhatArtifactStore(artifactsDirectory string) *HardhatArtifactStore {
	return &HardhatArtifactStore{
		ArtifactsDirectory: artifactsDirectory,
	}
}

// Platform returns the platform identifier of the store.
func (s *HardhatArtifactStore) Platform() string {
	return HardhatPlatformId
}

// FullyQualifiedNames walks the artifacts directory and returns the fully qualified name of every contract artifact,
// sorted. The build-info directory and debug files are skipped.
func (s *HardhatArtifactStore) FullyQualifiedNames() ([]string, error) {
	buildInfoDirectory := filepath.Join(s.ArtifactsDirectory, hardhatBuildInfoDirectory)

	var names []string
	err := filepath.WalkDir(s.ArtifactsDirectory, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path == buildInfoDirectory {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".json") || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}

		artifact, err := types.ReadContractArtifactFile(path)
		if err != nil {
			return err
		}
		if !strings.HasPrefix(artifact.Format, hardhatArtifactFormatPrefix) {
			return nil
		}
		names = append(names, artifact.FullyQualifiedName())
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not enumerate artifacts in %s", s.ArtifactsDirectory)
	}

	sort.Strings(names)
	return names, nil
}

// ArtifactPath returns the path of the artifact of the contract with the given fully qualified name.
func (s *HardhatArtifactStore) ArtifactPath(fullyQualifiedName string) (string, error) {
	sourceName, contractName, err := SplitFullyQualifiedName(fullyQualifiedName)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.ArtifactsDirectory, filepath.FromSlash(sourceName), contractName+".json"), nil
}

// ReadArtifact reads the artifact of the contract with the given fully qualified name.
func (s *HardhatArtifactStore) ReadArtifact(fullyQualifiedName string) (*types.ContractArtifact, error) {
	path, err := s.ArtifactPath(fullyQualifiedName)
	if err != nil {
		return nil, err
	}
	return types.ReadContractArtifactFile(path)
}

// ReadDebugFile reads the debug companion file of the contract with the given fully qualified name.
func (s *HardhatArtifactStore) ReadDebugFile(fullyQualifiedName string) (*types.ArtifactDebugFile, error) {
	path, err := s.ArtifactPath(fullyQualifiedName)
	if err != nil {
		return nil, err
	}
	return types.ReadArtifactDebugFile(types.GetArtifactDebugFilePath(path))
}

// BuildInfoPaths returns the paths of all build-info documents, sorted. A missing build-info directory yields no
// paths.
func (s *HardhatArtifactStore) BuildInfoPaths() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.ArtifactsDirectory, hardhatBuildInfoDirectory))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		paths = append(paths, filepath.Join(s.ArtifactsDirectory, hardhatBuildInfoDirectory, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadBuildInfo reads the build-info document at the given path.
func (s *HardhatArtifactStore) ReadBuildInfo(path string) (*types.BuildInfo, error) {
	return types.ReadBuildInfoFile(path)
}

// SplitFullyQualifiedName splits "sourceName:ContractName" into its parts. Source names may themselves contain
// colons, so the name is split at the last one.
func SplitFullyQualifiedName(fullyQualifiedName string) (string, string, error) {
	i := strings.LastIndex(fullyQualifiedName, ":")
	if i <= 0 || i == len(fullyQualifiedName)-1 {
		return "", "", errors.Errorf("invalid fully qualified contract name %q", fullyQualifiedName)
	}
	return fullyQualifiedName[:i], fullyQualifiedName[i+1:], nil
}
