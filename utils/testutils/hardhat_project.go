package testutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/crytic/solinspect/compilation/types"
	"github.com/stretchr/testify/require"
)

// HardhatProject describes an ephemeral Hardhat-style project directory used for unit tests. Artifacts are written
// the way Hardhat lays them out so the artifact store, resolver and extractors can be exercised against real files.
type HardhatProject struct {
	t *testing.T

	// RootDirectory is the project root.
	RootDirectory string

	// ArtifactsDirectory is the artifacts directory within the project root.
	ArtifactsDirectory string

	// CacheDirectory is the cache directory within the project root.
	CacheDirectory string
}

// NewHardhatProject creates an empty project in a test temp directory.
func NewHardhatProject(t *testing.T) *HardhatProject {
	root := t.TempDir()
	return &HardhatProject{
		t:                  t,
		RootDirectory:      root,
		ArtifactsDirectory: filepath.Join(root, "artifacts"),
		CacheDirectory:     filepath.Join(root, "cache"),
	}
}

// AddBuildInfo writes a build-info document under artifacts/build-info and returns its path.
func (p *HardhatProject) AddBuildInfo(fileName string, buildInfo *types.BuildInfo) string {
	if buildInfo.Format == "" {
		buildInfo.Format = "hh-sol-build-info-1"
	}
	path := filepath.Join(p.ArtifactsDirectory, "build-info", fileName)
	WriteJSONFile(p.t, path, buildInfo)
	return path
}

// AddArtifact writes the artifact of a contract. If buildInfoFileName is non-empty, a debug file referencing that
// build-info document is written next to it.
func (p *HardhatProject) AddArtifact(sourceName string, contractName string, buildInfoFileName string) string {
	path := filepath.Join(p.ArtifactsDirectory, filepath.FromSlash(sourceName), contractName+".json")
	WriteJSONFile(p.t, path, &types.ContractArtifact{
		Format:       "hh-sol-artifact-1",
		ContractName: contractName,
		SourceName:   sourceName,
	})

	if buildInfoFileName != "" {
		relative, err := filepath.Rel(filepath.Dir(path), filepath.Join(p.ArtifactsDirectory, "build-info", buildInfoFileName))
		require.NoError(p.t, err)
		WriteJSONFile(p.t, types.GetArtifactDebugFilePath(path), &types.ArtifactDebugFile{
			Format:    "hh-sol-dbg-1",
			BuildInfo: filepath.ToSlash(relative),
		})
	}
	return path
}

// WriteJSONFile marshals v and writes it to path, creating parent directories as needed.
func WriteJSONFile(t *testing.T, path string, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, b, 0644))
}
