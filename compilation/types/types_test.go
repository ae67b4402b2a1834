package types

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseSourceMapStickyFields verifies that empty fields and empty elements inherit the previous element's values.
func TestParseSourceMapStickyFields(t *testing.T) {
	sourceMap, err := ParseSourceMap("0:10:3:i;5:1:;;:::o;7:2:-1:-:1")
	require.NoError(t, err)
	require.Len(t, sourceMap, 5)

	assert.Equal(t, SourceMapElement{Index: 0, Offset: 0, Length: 10, FileID: 3, JumpType: SourceMapJumpTypeJumpIn}, sourceMap[0])
	assert.Equal(t, 3, sourceMap[1].FileID)
	assert.Equal(t, 5, sourceMap[1].Offset)
	assert.Equal(t, SourceMapJumpTypeJumpIn, sourceMap[1].JumpType)
	assert.Equal(t, 3, sourceMap[2].FileID)
	assert.Equal(t, 2, sourceMap[2].Index)
	assert.Equal(t, SourceMapJumpTypeJumpOut, sourceMap[3].JumpType)
	assert.Equal(t, SourceMapNoFile, sourceMap[4].FileID)
	assert.Equal(t, SourceMapJumpTypeJumpWithin, sourceMap[4].JumpType)
	assert.Equal(t, 1, sourceMap[4].ModifierDepth)
}

// TestParseSourceMapEdgeCases verifies empty input, missing file ids and malformed numbers.
func TestParseSourceMapEdgeCases(t *testing.T) {
	sourceMap, err := ParseSourceMap("")
	require.NoError(t, err)
	assert.Empty(t, sourceMap)

	// A trailing separator counts as one more (empty) element
	sourceMap, err = ParseSourceMap("1:2;")
	require.NoError(t, err)
	require.Len(t, sourceMap, 2)
	assert.Equal(t, SourceMapNoFile, sourceMap[1].FileID)

	_, err = ParseSourceMap("1:2:x")
	assert.Error(t, err)
}

// TestCreateAstToFileMapping verifies that nested AST nodes are mapped to the file which declares them.
func TestCreateAstToFileMapping(t *testing.T) {
	raw := `{
		"output": {
			"sources": {
				"contracts/A.sol": {"id": 0, "ast": {"id": 10, "nodeType": "SourceUnit", "nodes": [
					{"id": 11, "nodeType": "ContractDefinition", "nodes": [{"id": 12, "nodeType": "VariableDeclaration"}]}
				]}},
				"contracts/B.sol": {"id": 1, "ast": {"id": 20, "nodeType": "SourceUnit"}},
				"contracts/C.sol": {"id": 2}
			}
		}
	}`
	var info BuildInfo
	require.NoError(t, json.Unmarshal([]byte(raw), &info))

	mapping := CreateAstToFileMapping(&info)
	assert.Equal(t, map[int]string{
		10: "contracts/A.sol",
		11: "contracts/A.sol",
		12: "contracts/A.sol",
		20: "contracts/B.sol",
	}, mapping)
	assert.Equal(t, map[int]string{0: "contracts/A.sol", 1: "contracts/B.sol", 2: "contracts/C.sol"}, info.SourceIDs())
}

// TestBuildInfoLookups verifies contract lookups, hex prefix handling and compiler version parsing.
func TestBuildInfoLookups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc.json")
	raw := `{
		"_format": "hh-sol-build-info-1",
		"id": "abc",
		"solcVersion": "0.8.19",
		"output": {
			"contracts": {"contracts/A.sol": {"A": {"evm": {"bytecode": {"object": "0x6001"}, "deployedBytecode": {"object": "00"}}}}}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	info, err := ReadBuildInfoFile(path)
	require.NoError(t, err)

	contract, ok := info.Contract("contracts/A.sol", "A")
	require.True(t, ok)
	assert.Equal(t, "6001", contract.EVM.Bytecode.HexObject())
	assert.Equal(t, "00", contract.EVM.DeployedBytecode.HexObject())

	_, ok = info.Contract("contracts/A.sol", "B")
	assert.False(t, ok)
	_, ok = info.Contract("contracts/B.sol", "A")
	assert.False(t, ok)

	version, err := info.CompilerVersion()
	require.NoError(t, err)
	assert.Equal(t, "0.8.19", version.String())

	assert.Equal(t, "abc.json", BuildInfoDocument{Path: path, Info: info}.FileName())
	assert.Equal(t, "artifacts/contracts/A.sol/A.dbg.json", GetArtifactDebugFilePath("artifacts/contracts/A.sol/A.json"))
}

// TestDecodeContractMetadata verifies the bytecode hash and compiler version are extracted from a CBOR blob.
func TestDecodeContractMetadata(t *testing.T) {
	hash := make([]byte, 34)
	hash[0] = 0x12
	blob, err := cbor.Marshal(map[string]any{
		"ipfs": hash,
		"solc": []byte{0, 8, 19},
	}, cbor.EncOptions{})
	require.NoError(t, err)

	metadata, err := DecodeContractMetadata(blob)
	require.NoError(t, err)

	bytecodeHash, kind := metadata.ExtractBytecodeHash()
	assert.Equal(t, hash, bytecodeHash)
	assert.Equal(t, "ipfs", kind)

	version, err := metadata.CompilerVersion()
	require.NoError(t, err)
	assert.Equal(t, "0.8.19", version.String())

	_, err = DecodeContractMetadata(nil)
	assert.Error(t, err)
}
