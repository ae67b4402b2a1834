package sizing

import "fmt"

// SourceIDKind describes what a SourceID refers to.
type SourceIDKind int

const (
	// SourceIDKindSource refers to a source file by its compiler-assigned id.
	SourceIDKindSource SourceIDKind = iota

	// SourceIDKindGenerated refers to a compiler-generated source by its id within the bytecode object.
	SourceIDKindGenerated

	// SourceIDKindNoSource refers to instructions which the source map does not attribute to any file.
	SourceIDKindNoSource

	// SourceIDKindMetadata refers to the CBOR metadata blob appended to runtime bytecode.
	SourceIDKindMetadata

	// SourceIDKindUnknown refers to trailing bytes which are neither instructions nor metadata.
	SourceIDKindUnknown
)

// Reserved display names of the synthetic source kinds. They share the "## " prefix so they sort and render apart
// from real file paths.
const (
	NoSourceName       = "## non-mapped bytecode"
	MetadataName       = "## contract metadata"
	UnknownName        = "## non-code bytes"
	generatedSourceFmt = "## compiler %s"
	unknownSourceFmt   = "<unknown:%d>"
)

// SourceID identifies a contributor of bytecode. Index is only meaningful for the Source and Generated kinds, so
// reserved kinds can never collide with a real source id.
type SourceID struct {
	Kind  SourceIDKind
	Index int
}

var (
	// NoSource is the id of bytecode regions without a source mapping.
	NoSource = SourceID{Kind: SourceIDKindNoSource}

	// Metadata is the id of the trailing contract metadata blob.
	Metadata = SourceID{Kind: SourceIDKindMetadata}

	// Unknown is the id of leftover bytes which cannot be attributed.
	Unknown = SourceID{Kind: SourceIDKindUnknown}
)

// Source returns the id of the source file with the given compiler-assigned index.
func Source(index int) SourceID {
	return SourceID{Kind: SourceIDKindSource, Index: index}
}

// Generated returns the id of the compiler-generated source with the given index.
func Generated(index int) SourceID {
	return SourceID{Kind: SourceIDKindGenerated, Index: index}
}

// sourceIDFromFileID converts a source map file id into a SourceID.
func sourceIDFromFileID(fileID int) SourceID {
	if fileID == -1 {
		return NoSource
	}
	return Source(fileID)
}

// IsSynthetic indicates whether the id refers to a region which is not an authored source file.
func (id SourceID) IsSynthetic() bool {
	return id.Kind != SourceIDKindSource
}

// String returns a short textual form of the id.
func (id SourceID) String() string {
	switch id.Kind {
	case SourceIDKindSource:
		return fmt.Sprintf("source(%d)", id.Index)
	case SourceIDKindGenerated:
		return fmt.Sprintf("generated(%d)", id.Index)
	case SourceIDKindNoSource:
		return "no-source"
	case SourceIDKindMetadata:
		return "metadata"
	case SourceIDKindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", int(id.Kind))
	}
}
