package compilation

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/crytic/solinspect/compilation/types"
	"github.com/crytic/solinspect/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeArtifactHash_EmptyDocuments(t *testing.T) {
	t.Parallel()

	hash := ComputeArtifactHash(nil)
	assert.NotEmpty(t, hash, "hash should not be empty even for nil documents")

	hash2 := ComputeArtifactHash([]types.BuildInfoDocument{})
	assert.Equal(t, hash, hash2, "hash should be the same for nil and empty slice")
}

func TestComputeArtifactHash_Deterministic(t *testing.T) {
	t.Parallel()

	documents := createTestDocuments("0x60806040", "6080604052")

	hash1 := ComputeArtifactHash(documents)
	hash2 := ComputeArtifactHash(documents)

	assert.Equal(t, hash1, hash2, "hash should be deterministic")
}

func TestComputeArtifactHash_DifferentBytecode(t *testing.T) {
	t.Parallel()

	hash1 := ComputeArtifactHash(createTestDocuments("0x60806040", "6080604052"))
	hash2 := ComputeArtifactHash(createTestDocuments("0x60806041", "6080604053"))

	assert.NotEqual(t, hash1, hash2, "different bytecode should produce different hash")
}

func TestComputeArtifactHash_SplitIndependent(t *testing.T) {
	t.Parallel()

	alpha := types.ContractOutput{EVM: types.EVMOutput{
		Bytecode:         types.BytecodeOutput{Object: "0102"},
		DeployedBytecode: types.BytecodeOutput{Object: "0304"},
	}}
	beta := types.ContractOutput{EVM: types.EVMOutput{
		Bytecode:         types.BytecodeOutput{Object: "0506"},
		DeployedBytecode: types.BytecodeOutput{Object: "0708"},
	}}

	// Both contracts in a single document
	combined := []types.BuildInfoDocument{{Path: "a.json", Info: &types.BuildInfo{Output: types.CompilerOutput{
		Contracts: map[string]map[string]types.ContractOutput{"Contract.sol": {"Alpha": alpha, "Beta": beta}},
	}}}}

	// The same contracts split over two documents, in the reverse order
	split := []types.BuildInfoDocument{
		{Path: "b.json", Info: &types.BuildInfo{Output: types.CompilerOutput{
			Contracts: map[string]map[string]types.ContractOutput{"Contract.sol": {"Beta": beta}},
		}}},
		{Path: "a.json", Info: &types.BuildInfo{Output: types.CompilerOutput{
			Contracts: map[string]map[string]types.ContractOutput{"Contract.sol": {"Alpha": alpha}},
		}}},
	}

	assert.Equal(t, ComputeArtifactHash(combined), ComputeArtifactHash(split), "hash should be independent of contract order")
}

func TestLoadArtifactHashCache_NonExistent(t *testing.T) {
	t.Parallel()

	cache := LoadArtifactHashCache("/nonexistent/path")
	assert.Nil(t, cache, "should return nil for non-existent cache")
}

func TestSaveAndLoadArtifactHashCache(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	originalCache := &ArtifactHashCache{
		Hash:      "abc123def456",
		Timestamp: time.Now().Truncate(time.Second), // Truncate for JSON round-trip
	}

	err := SaveArtifactHashCache(tempDir, originalCache)
	require.NoError(t, err, "should save cache without error")

	loadedCache := LoadArtifactHashCache(tempDir)
	require.NotNil(t, loadedCache, "should load cache successfully")

	assert.Equal(t, originalCache.Hash, loadedCache.Hash, "hash should match")
	assert.WithinDuration(t, originalCache.Timestamp, loadedCache.Timestamp, time.Second, "timestamp should match")
}

func TestSaveArtifactHashCache_CreatesDirectory(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	nestedDir := filepath.Join(tempDir, "nested", "dir")

	cache := &ArtifactHashCache{
		Hash:      "test123",
		Timestamp: time.Now(),
	}

	err := SaveArtifactHashCache(nestedDir, cache)
	require.NoError(t, err, "should create nested directories")

	// Verify file exists
	_, err = os.Stat(filepath.Join(nestedDir, ArtifactHashCacheFileName))
	assert.NoError(t, err, "cache file should exist")
}

func TestLoadArtifactHashCache_InvalidJSON(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	cachePath := filepath.Join(tempDir, ArtifactHashCacheFileName)

	err := os.WriteFile(cachePath, []byte("invalid json"), 0644)
	require.NoError(t, err)

	cache := LoadArtifactHashCache(tempDir)
	assert.Nil(t, cache, "should return nil for invalid JSON")
}

func TestNotifyArtifactHashStatus(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	logger := logging.NewLogger(zerolog.Disabled)
	documents := createTestDocuments("0x60806040", "6080604052")

	assert.False(t, NotifyArtifactHashStatus(documents, tempDir, logger), "first run should see new artifacts")
	assert.True(t, NotifyArtifactHashStatus(documents, tempDir, logger), "second run should see the same artifacts")
	assert.False(t, NotifyArtifactHashStatus(createTestDocuments("0x60806041", "6080604052"), tempDir, logger), "changed bytecode should be new")
	assert.False(t, NotifyArtifactHashStatus(nil, tempDir, logger), "no documents are never the same")
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		duration time.Duration
		expected string
	}{
		{30 * time.Second, "30 seconds"},
		{1 * time.Minute, "1 minute"},
		{5 * time.Minute, "5 minutes"},
		{1 * time.Hour, "1 hour"},
		{3 * time.Hour, "3 hours"},
		{24 * time.Hour, "1 day"},
		{72 * time.Hour, "3 days"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := formatDuration(tt.duration)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper functions

func createTestDocuments(initBytecode string, runtimeBytecode string) []types.BuildInfoDocument {
	return []types.BuildInfoDocument{
		{
			Path: "abc.json",
			Info: &types.BuildInfo{Output: types.CompilerOutput{
				Contracts: map[string]map[string]types.ContractOutput{
					"TestContract.sol": {
						"TestContract": {EVM: types.EVMOutput{
							Bytecode:         types.BytecodeOutput{Object: initBytecode},
							DeployedBytecode: types.BytecodeOutput{Object: runtimeBytecode},
						}},
					},
				},
			}},
		},
	}
}
