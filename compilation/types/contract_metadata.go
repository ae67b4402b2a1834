package types

import (
	"fmt"

	"github.com/Masterminds/semver"
	"github.com/fxamacker/cbor"
	"github.com/pkg/errors"
)

// ContractMetadata is an CBOR-encoded structure describing contract information which is embedded within smart contract
// bytecode by the Solidity compiler (unless explicitly directed not to).
// Reference: https://docs.soliditylang.org/en/v0.8.16/metadata.html
type ContractMetadata map[string]any

// byteCodeHashMetadataKeys defines the keys in the CBOR-encoded ContractMetadata which contain bytecode hashes.
var byteCodeHashMetadataKeys = [...]string{
	"ipfs",
	"bzzr1",
	"bzzr0",
}

// DecodeContractMetadata decodes a CBOR-encoded metadata blob, as found at the end of runtime bytecode (without the
// trailing two byte length field).
func DecodeContractMetadata(blob []byte) (*ContractMetadata, error) {
	if len(blob) == 0 {
		return nil, errors.New("empty contract metadata")
	}
	var metadata ContractMetadata
	if err := cbor.Unmarshal(blob, &metadata); err != nil {
		return nil, errors.Wrap(err, "could not decode contract metadata")
	}
	return &metadata, nil
}

// ExtractBytecodeHash extracts the bytecode hash from given contract metadata and returns the bytes representing the
// hash along with the metadata key it was found under. If it could not be detected or extracted, nil is returned.
func (m ContractMetadata) ExtractBytecodeHash() ([]byte, string) {
	for _, possibleMetadataKey := range byteCodeHashMetadataKeys {
		if bytecodeHashData, keyExists := m[possibleMetadataKey]; keyExists {
			if bytecodeHash, ok := bytecodeHashData.([]byte); ok {
				return bytecodeHash, possibleMetadataKey
			}
		}
	}
	return nil, ""
}

// CompilerVersion returns the compiler version recorded under the "solc" key. Release builds record it as three bytes
// (major, minor, patch), pre-release builds as a full version string.
func (m ContractMetadata) CompilerVersion() (*semver.Version, error) {
	switch v := m["solc"].(type) {
	case []byte:
		if len(v) != 3 {
			return nil, errors.Errorf("unexpected compiler version length %d in contract metadata", len(v))
		}
		return semver.NewVersion(fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2]))
	case string:
		return semver.NewVersion(v)
	default:
		return nil, errors.New("contract metadata does not record a compiler version")
	}
}
