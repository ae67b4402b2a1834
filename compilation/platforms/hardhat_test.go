package platforms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/crytic/solinspect/compilation/types"
	"github.com/crytic/solinspect/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHardhatArtifactStore tests that contract artifacts, debug files and build-info documents are discovered and
// read from a Hardhat artifacts directory.
func TestHardhatArtifactStore(t *testing.T) {
	project := testutils.NewHardhatProject(t)
	project.AddBuildInfo("abc.json", &types.BuildInfo{ID: "abc", SolcVersion: "0.8.19"})
	project.AddBuildInfo("def.json", &types.BuildInfo{ID: "def", SolcVersion: "0.8.20"})
	project.AddArtifact("contracts/Token.sol", "Token", "abc.json")
	project.AddArtifact("contracts/Token.sol", "IToken", "abc.json")
	project.AddArtifact("contracts/lib/Math.sol", "Math", "def.json")

	// A foreign JSON file which is not an artifact must be skipped.
	testutils.WriteJSONFile(t, filepath.Join(project.ArtifactsDirectory, "other.json"), map[string]string{"name": "x"})

	store := NewHardhatArtifactStore(project.ArtifactsDirectory)
	assert.EqualValues(t, HardhatPlatformId, store.Platform())

	names, err := store.FullyQualifiedNames()
	require.NoError(t, err)
	assert.EqualValues(t, []string{
		"contracts/Token.sol:IToken",
		"contracts/Token.sol:Token",
		"contracts/lib/Math.sol:Math",
	}, names)

	artifact, err := store.ReadArtifact("contracts/lib/Math.sol:Math")
	require.NoError(t, err)
	assert.EqualValues(t, "Math", artifact.ContractName)
	assert.EqualValues(t, "contracts/lib/Math.sol", artifact.SourceName)

	debugFile, err := store.ReadDebugFile("contracts/lib/Math.sol:Math")
	require.NoError(t, err)
	assert.EqualValues(t, "def.json", filepath.Base(debugFile.BuildInfo))

	paths, err := store.BuildInfoPaths()
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.EqualValues(t, "abc.json", filepath.Base(paths[0]))
	assert.EqualValues(t, "def.json", filepath.Base(paths[1]))

	documents, err := LoadBuildInfoDocuments(store)
	require.NoError(t, err)
	require.Len(t, documents, 2)
	assert.EqualValues(t, "abc", documents[0].Info.ID)
	assert.EqualValues(t, "def.json", documents[1].FileName())
}

// TestHardhatArtifactStoreMissingDirectories tests the behavior of a store whose directories do not exist.
func TestHardhatArtifactStoreMissingDirectories(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "artifacts")

	// No build-info directory yields no documents.
	require.NoError(t, os.MkdirAll(directory, 0755))
	store := NewHardhatArtifactStore(directory)
	paths, err := store.BuildInfoPaths()
	require.NoError(t, err)
	assert.Empty(t, paths)

	names, err := store.FullyQualifiedNames()
	require.NoError(t, err)
	assert.Empty(t, names)

	// A missing artifacts directory cannot be enumerated.
	store = NewHardhatArtifactStore(filepath.Join(directory, "missing"))
	_, err = store.FullyQualifiedNames()
	assert.Error(t, err)

	// Reading a debug file which was never written fails.
	_, err = store.ReadDebugFile("contracts/A.sol:A")
	assert.Error(t, err)
}

// TestSplitFullyQualifiedName tests splitting fully qualified contract names.
func TestSplitFullyQualifiedName(t *testing.T) {
	sourceName, contractName, err := SplitFullyQualifiedName("contracts/Token.sol:Token")
	require.NoError(t, err)
	assert.EqualValues(t, "contracts/Token.sol", sourceName)
	assert.EqualValues(t, "Token", contractName)

	sourceName, contractName, err = SplitFullyQualifiedName("c:/project/A.sol:A")
	require.NoError(t, err)
	assert.EqualValues(t, "c:/project/A.sol", sourceName)
	assert.EqualValues(t, "A", contractName)

	for _, name := range []string{"Token", ":Token", "contracts/Token.sol:"} {
		_, _, err = SplitFullyQualifiedName(name)
		assert.Error(t, err, name)
	}
}
