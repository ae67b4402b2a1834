package types

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ContractArtifact describes the per-contract artifact file a Hardhat-style pipeline writes next to the build-info
// documents. Only identifying fields are modeled, the bytecode is read from the build info instead.
type ContractArtifact struct {
	// Format describes the artifact format identifier, e.g. "hh-sol-artifact-1".
	Format string `json:"_format"`

	// ContractName is the declared name of the contract.
	ContractName string `json:"contractName"`

	// SourceName is the source file the contract is declared in, e.g. "contracts/Token.sol".
	SourceName string `json:"sourceName"`
}

// FullyQualifiedName returns the artifact's fully qualified contract name, "sourceName:ContractName".
func (a *ContractArtifact) FullyQualifiedName() string {
	return a.SourceName + ":" + a.ContractName
}

// ArtifactDebugFile describes the debug companion file of a contract artifact, which references the build-info
// document the artifact was produced from.
type ArtifactDebugFile struct {
	// Format describes the debug file format identifier, e.g. "hh-sol-dbg-1".
	Format string `json:"_format"`

	// BuildInfo is the path of the build-info document, relative to the debug file.
	BuildInfo string `json:"buildInfo"`
}

// GetArtifactDebugFilePath obtains the debug companion file path for an artifact path by swapping its ".json"
// extension for ".dbg.json".
func GetArtifactDebugFilePath(artifactPath string) string {
	return strings.TrimSuffix(artifactPath, ".json") + ".dbg.json"
}

// ReadContractArtifactFile reads and parses a contract artifact from the provided path.
func ReadContractArtifactFile(path string) (*ContractArtifact, error) {
	var artifact ContractArtifact
	if err := readJSONFile(path, &artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}

// ReadArtifactDebugFile reads and parses an artifact debug file from the provided path.
func ReadArtifactDebugFile(path string) (*ArtifactDebugFile, error) {
	var debugFile ArtifactDebugFile
	if err := readJSONFile(path, &debugFile); err != nil {
		return nil, err
	}
	return &debugFile, nil
}

// readJSONFile reads the file at path and unmarshals it into v.
func readJSONFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if err = json.Unmarshal(b, v); err != nil {
		return errors.Wrapf(err, "could not parse %s", path)
	}
	return nil
}
