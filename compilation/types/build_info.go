package types

import (
	"path/filepath"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

// BuildInfo describes a build-info document: the full input and output of a single compiler invocation
// (a compilation unit). Only the output fields used for size and storage analysis are modeled.
type BuildInfo struct {
	// Format describes the build-info format identifier, e.g. "hh-sol-build-info-1".
	Format string `json:"_format"`

	// ID is the unique identifier of this compilation unit.
	ID string `json:"id"`

	// SolcVersion is the short compiler version, e.g. "0.8.19".
	SolcVersion string `json:"solcVersion"`

	// SolcLongVersion is the full compiler version including the commit, e.g. "0.8.19+commit.7dd6d404".
	SolcLongVersion string `json:"solcLongVersion"`

	// Output is the compiler's standard JSON output.
	Output CompilerOutput `json:"output"`
}

// CompilerOutput describes the compiler's standard JSON output.
type CompilerOutput struct {
	// Sources maps each source file name to its compiler-assigned id and AST.
	Sources map[string]SourceOutput `json:"sources"`

	// Contracts maps source file name -> contract name -> compiled contract output.
	Contracts map[string]map[string]ContractOutput `json:"contracts"`
}

// SourceOutput describes a single source file within CompilerOutput.
type SourceOutput struct {
	// ID is the source id referenced by source maps.
	ID int `json:"id"`

	// AST is the source unit's abstract syntax tree. It is only present if requested through the output selection.
	AST *ASTNode `json:"ast,omitempty"`
}

// ContractOutput describes the compiler output for a single contract.
type ContractOutput struct {
	// EVM holds the bytecode related output.
	EVM EVMOutput `json:"evm"`

	// StorageLayout describes the contract's storage variables. It is only present if requested through the output
	// selection.
	StorageLayout *StorageLayout `json:"storageLayout,omitempty"`
}

// EVMOutput describes the bytecode objects of a contract.
type EVMOutput struct {
	// Bytecode is the initialization (creation) bytecode.
	Bytecode BytecodeOutput `json:"bytecode"`

	// DeployedBytecode is the runtime bytecode.
	DeployedBytecode BytecodeOutput `json:"deployedBytecode"`
}

// BytecodeOutput describes a bytecode object along with its source mapping.
type BytecodeOutput struct {
	// Object is the hex encoded bytecode, without a 0x prefix. It may contain unlinked library placeholders.
	Object string `json:"object"`

	// SourceMap is the compressed source mapping string for Object.
	SourceMap string `json:"sourceMap"`

	// GeneratedSources lists the sources synthesized by the compiler for this bytecode object.
	GeneratedSources []GeneratedSource `json:"generatedSources"`
}

// GeneratedSource describes a source synthesized by the compiler (e.g. ABI encoders/decoders emitted as Yul).
type GeneratedSource struct {
	// ID is the source id referenced by the bytecode's source map.
	ID int `json:"id"`

	// Name is the generated source's name, e.g. "#utility.yul".
	Name string `json:"name"`

	// Language is the language of the generated source, usually "Yul".
	Language string `json:"language,omitempty"`
}

// StorageLayout describes the storage layout of a contract.
type StorageLayout struct {
	// Storage lists the contract's state variables in layout order.
	Storage []StorageEntry `json:"storage"`
}

// StorageEntry describes a single state variable's storage location.
type StorageEntry struct {
	// AstID is the id of the variable declaration's AST node.
	AstID int `json:"astId"`

	// Contract is the fully qualified name of the contract declaring the variable.
	Contract string `json:"contract"`

	// Label is the variable name.
	Label string `json:"label"`

	// Offset is the byte offset of the variable within its slot.
	Offset int `json:"offset"`

	// Slot is the storage slot as a decimal string. Slots can exceed native integer ranges.
	Slot string `json:"slot"`

	// Type is the compiler's internal type identifier, e.g. "t_mapping(t_address,t_uint256)".
	Type string `json:"type"`
}

// HexObject returns the bytecode hex string with any 0x prefix removed.
func (b BytecodeOutput) HexObject() string {
	if len(b.Object) >= 2 && b.Object[0] == '0' && (b.Object[1] == 'x' || b.Object[1] == 'X') {
		return b.Object[2:]
	}
	return b.Object
}

// Contract looks up the compiler output for a contract. Returns false if the contract is not part of this
// compilation unit.
func (b *BuildInfo) Contract(sourceName string, contractName string) (*ContractOutput, bool) {
	contracts, ok := b.Output.Contracts[sourceName]
	if !ok {
		return nil, false
	}
	contract, ok := contracts[contractName]
	if !ok {
		return nil, false
	}
	return &contract, true
}

// SourceIDs returns a mapping of source id to source file name for every source of this compilation unit.
func (b *BuildInfo) SourceIDs() map[int]string {
	ids := make(map[int]string, len(b.Output.Sources))
	for fileName, source := range b.Output.Sources {
		ids[source.ID] = fileName
	}
	return ids
}

// CompilerVersion parses the compiler version this compilation unit was produced with.
func (b *BuildInfo) CompilerVersion() (*semver.Version, error) {
	version := b.SolcVersion
	if version == "" {
		version = b.SolcLongVersion
	}
	if version == "" {
		return nil, errors.Errorf("build info %q does not declare a compiler version", b.ID)
	}
	return semver.NewVersion(version)
}

// BuildInfoDocument pairs a parsed BuildInfo with the path it was read from.
type BuildInfoDocument struct {
	// Path is the file path of the build-info document.
	Path string

	// Info is the parsed build-info document.
	Info *BuildInfo
}

// FileName returns the base name of the build-info file. Artifact debug files reference build-info documents by path,
// and the base name is what identifies the compilation unit.
func (d BuildInfoDocument) FileName() string {
	return filepath.Base(d.Path)
}

// ReadBuildInfoFile reads and parses a build-info document from the provided path.
func ReadBuildInfoFile(path string) (*BuildInfo, error) {
	var buildInfo BuildInfo
	if err := readJSONFile(path, &buildInfo); err != nil {
		return nil, err
	}
	return &buildInfo, nil
}
