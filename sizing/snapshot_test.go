package sizing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSnapshotMappings returns results of a run with one contract without any contributors.
func newSnapshotMappings() []*ContractCodeMapping {
	return []*ContractCodeMapping{
		{
			UniqueName: "Token:contracts/Token.sol",
			PrintName:  "Token",
			CodeSize:   30,
			InitSize:   12,
			Sources: []*SourceContribution{
				{ID: Metadata, Name: MetadataName, CodeSize: 10},
				{ID: Source(0), Name: "contracts/Token.sol", CodeSize: 20, InitSize: 12},
			},
		},
		{
			UniqueName: "Empty:contracts/Empty.sol",
			PrintName:  "Empty",
		},
	}
}

// TestSnapshotStoresRoundTrip tests that both snapshot formats reproduce the saved sizes and skip contracts without
// contributors.
func TestSnapshotStoresRoundTrip(t *testing.T) {
	directory := t.TempDir()
	stores := []SnapshotStore{
		NewJSONSnapshotStore(filepath.Join(directory, "cache", "sizes.json")),
		NewBoltSnapshotStore(filepath.Join(directory, "cache", "sizes.db")),
	}

	expected := StoredCodeMappings{
		"Token:contracts/Token.sol": {
			CodeSize: 30,
			InitSize: 12,
			Sources: map[string]StoredSourceSize{
				MetadataName:          {CodeSize: 10},
				"contracts/Token.sol": {CodeSize: 20, InitSize: 12},
			},
		},
	}

	for _, store := range stores {
		// A store which was never saved is empty.
		stored, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, stored)

		require.NoError(t, store.Save(newSnapshotMappings()))
		stored, err = store.Load()
		require.NoError(t, err)
		assert.EqualValues(t, expected, stored)

		_, ok := stored.PreviousCodeSize("Empty:contracts/Empty.sol")
		assert.False(t, ok)
		size, ok := stored.PreviousSourceCodeSize("Token:contracts/Token.sol", "contracts/Token.sol")
		assert.True(t, ok)
		assert.EqualValues(t, 20, size)

		// Saving overwrites previous results entirely.
		require.NoError(t, store.Save(newSnapshotMappings()[1:]))
		stored, err = store.Load()
		require.NoError(t, err)
		assert.Empty(t, stored)
	}
}

// TestJSONSnapshotStoreFormat tests the field names of the JSON snapshot document.
func TestJSONSnapshotStoreFormat(t *testing.T) {
	store := NewJSONSnapshotStore(filepath.Join(t.TempDir(), "sizes.json"))
	require.NoError(t, store.Save(newSnapshotMappings()[:1]))

	b, err := os.ReadFile(store.Path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Token:contracts/Token.sol": {
			"codeSize": 30,
			"initSize": 12,
			"sources": {
				"## contract metadata": {"codeSize": 10, "initSize": 0},
				"contracts/Token.sol": {"codeSize": 20, "initSize": 12}
			}
		}
	}`, string(b))

	require.NoError(t, os.WriteFile(store.Path, []byte("{"), 0644))
	_, err = store.Load()
	assert.Error(t, err)
}

// TestNewSnapshotStore tests snapshot store selection by format.
func TestNewSnapshotStore(t *testing.T) {
	store, err := NewSnapshotStore(SnapshotFormatJSON, "a")
	require.NoError(t, err)
	assert.IsType(t, &JSONSnapshotStore{}, store)

	store, err = NewSnapshotStore(SnapshotFormatBolt, "a")
	require.NoError(t, err)
	assert.IsType(t, &BoltSnapshotStore{}, store)

	_, err = NewSnapshotStore("yaml", "a")
	assert.Error(t, err)
}
