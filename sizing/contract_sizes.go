package sizing

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver"
	"github.com/crytic/solinspect/compilation/types"
	"github.com/crytic/solinspect/contracts"
	"github.com/crytic/solinspect/logging"
	"github.com/pkg/errors"
)

// SourceContribution describes how many bytes a single contributor added to a contract's bytecode.
type SourceContribution struct {
	// ID identifies the contributor.
	ID SourceID

	// Name is the source file path, or a reserved "## " prefixed name for synthetic contributors.
	Name string

	// CodeSize is the number of bytes contributed to the deployed (runtime) bytecode.
	CodeSize int

	// InitSize is the number of bytes contributed to the initialization bytecode.
	InitSize int
}

// ContractCodeMapping describes the bytecode sizes of a contract and their distribution over source files.
type ContractCodeMapping struct {
	// UniqueName is the "Name:path/to/File.sol" form which identifies the contract across runs.
	UniqueName string

	// PrintName is the contract name, or UniqueName if the name is not unique within the project.
	PrintName string

	// CodeSize is the size of the deployed bytecode.
	CodeSize int

	// InitSize is the size of the initialization bytecode, excluding the embedded deployed bytecode.
	InitSize int

	// Sources lists every contributor, ascending by CodeSize.
	Sources []*SourceContribution

	// Metadata is the decoded metadata blob of the deployed bytecode, if it carried a decodable one.
	Metadata *types.ContractMetadata

	// CompilerVersion is the compiler version recorded in the metadata, or the build-info compiler version if the
	// metadata does not record one.
	CompilerVersion *semver.Version
}

// BytecodeHashKind returns the metadata key the bytecode hash was found under (e.g. "ipfs"), or an empty string.
func (m *ContractCodeMapping) BytecodeHashKind() string {
	if m.Metadata == nil {
		return ""
	}
	_, kind := m.Metadata.ExtractBytecodeHash()
	return kind
}

// sourceNames resolves SourceIDs to display names for a single contract of a build-info document.
type sourceNames struct {
	files     map[int]string
	generated map[int]string
}

// resolve returns the canonical id and display name for an id emitted by the decoder. A source map index which is
// not a declared source but one of the contract's generated sources becomes a Generated id.
func (n *sourceNames) resolve(id SourceID) (SourceID, string) {
	switch id.Kind {
	case SourceIDKindNoSource:
		return id, NoSourceName
	case SourceIDKindMetadata:
		return id, MetadataName
	case SourceIDKindUnknown:
		return id, UnknownName
	}
	if name, ok := n.files[id.Index]; ok {
		return Source(id.Index), name
	}
	if name, ok := n.generated[id.Index]; ok {
		return Generated(id.Index), name
	}
	return id, fmt.Sprintf(unknownSourceFmt, id.Index)
}

// ExtractBytecodeMappings decodes the init and deployed bytecode of every given contract from the build-info
// documents it belongs to. If a contract is missing from the compiler output of a document it belongs to, no result
// is returned and the error is types.ErrBuildInconsistency.
func ExtractBytecodeMappings(documents []types.BuildInfoDocument, descriptions []contracts.ContractDescription) ([]*ContractCodeMapping, error) {
	logger := logging.GlobalLogger.NewSubLogger(logging.SERVICE_KEY, logging.ANALYSIS_SERVICE)

	var mappings []*ContractCodeMapping
	for _, document := range documents {
		fileIDs := document.Info.SourceIDs()
		buildInfoVersion, _ := document.Info.CompilerVersion()

		for _, description := range descriptions {
			if !description.BelongsTo(document.FileName()) {
				continue
			}

			output, ok := document.Info.Contract(description.SourceName, description.ContractName)
			if !ok {
				logger.Debug("Contract ", description.FullyQualifiedName(), " is missing from build info ", document.Path)
				return nil, errors.WithStack(types.ErrBuildInconsistency)
			}

			mapping, err := extractBytecodeMapping(description, output, fileIDs)
			if err != nil {
				return nil, errors.Wrapf(err, "could not decode bytecode of %s", description.FullyQualifiedName())
			}
			if mapping.CompilerVersion == nil {
				mapping.CompilerVersion = buildInfoVersion
			}
			mappings = append(mappings, mapping)
		}
	}
	return mappings, nil
}

// extractBytecodeMapping decodes the bytecode objects of a single contract.
func extractBytecodeMapping(description contracts.ContractDescription, output *types.ContractOutput, fileIDs map[int]string) (*ContractCodeMapping, error) {
	evm := output.EVM
	names := &sourceNames{
		files:     fileIDs,
		generated: make(map[int]string),
	}
	for _, bytecode := range []types.BytecodeOutput{evm.Bytecode, evm.DeployedBytecode} {
		for _, generated := range bytecode.GeneratedSources {
			names.generated[generated.ID] = fmt.Sprintf(generatedSourceFmt, generated.Name)
		}
	}

	deployed := evm.DeployedBytecode.HexObject()
	initAttribution, err := AttributeBytecode(evm.Bytecode.SourceMap, evm.Bytecode.HexObject(), len(deployed), false)
	if err != nil {
		return nil, errors.Wrap(err, "init bytecode")
	}
	codeAttribution, err := AttributeBytecode(evm.DeployedBytecode.SourceMap, deployed, 0, true)
	if err != nil {
		return nil, errors.Wrap(err, "deployed bytecode")
	}

	// Both bytecode objects accumulate into one entry per contributor.
	entries := make(map[SourceID]*SourceContribution)
	entry := func(id SourceID) *SourceContribution {
		canonical, name := names.resolve(id)
		if e, ok := entries[canonical]; ok {
			return e
		}
		e := &SourceContribution{ID: canonical, Name: name}
		entries[canonical] = e
		return e
	}
	for id, size := range initAttribution.Sizes {
		entry(id).InitSize += size
	}
	for id, size := range codeAttribution.Sizes {
		entry(id).CodeSize += size
	}

	mapping := &ContractCodeMapping{
		UniqueName: description.UniqueName(),
		PrintName:  description.PrintName(),
		CodeSize:   codeAttribution.TotalBytes,
		InitSize:   initAttribution.TotalBytes,
		Sources:    make([]*SourceContribution, 0, len(entries)),
	}
	for _, e := range entries {
		mapping.Sources = append(mapping.Sources, e)
	}
	SortSourceContributions(mapping.Sources)

	if codeAttribution.MetadataBlob != nil {
		if metadata, err := types.DecodeContractMetadata(codeAttribution.MetadataBlob); err == nil {
			mapping.Metadata = metadata
			if version, err := metadata.CompilerVersion(); err == nil {
				mapping.CompilerVersion = version
			}
		}
	}
	return mapping, nil
}

// SortSourceContributions sorts contributions ascending by CodeSize. Equal sizes are ordered by InitSize, then by
// name, so the order is independent of map iteration.
func SortSourceContributions(sources []*SourceContribution) {
	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].CodeSize != sources[j].CodeSize {
			return sources[i].CodeSize < sources[j].CodeSize
		}
		if sources[i].InitSize != sources[j].InitSize {
			return sources[i].InitSize < sources[j].InitSize
		}
		return sources[i].Name < sources[j].Name
	})
}
