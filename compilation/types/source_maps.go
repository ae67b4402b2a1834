package types

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Reference: Source mapping is performed according to the rules specified in solidity documentation:
// https://docs.soliditylang.org/en/latest/internals/source_mappings.html

// SourceMapJumpType describes the type of jump operation occurring within a SourceMapElement if the instruction
// is jumping.
type SourceMapJumpType string

const (
	// SourceMapJumpTypeNone indicates no jump occurred.
	SourceMapJumpTypeNone SourceMapJumpType = ""

	// SourceMapJumpTypeJumpIn indicates a jump into a function occurred.
	SourceMapJumpTypeJumpIn SourceMapJumpType = "i"

	// SourceMapJumpTypeJumpOut indicates a return from a function occurred.
	SourceMapJumpTypeJumpOut SourceMapJumpType = "o"

	// SourceMapJumpTypeJumpWithin indicates a jump occurred within the same function, e.g. for loops.
	SourceMapJumpTypeJumpWithin SourceMapJumpType = "-"
)

// SourceMapNoFile is the file id the compiler uses for instructions that do not map to any source file. It is also
// the file id in effect before the first element declares one.
const SourceMapNoFile = -1

// SourceMap describes a list of elements which correspond to instruction indexes in compiled bytecode, describing
// which source files and the start/end range of the source code which the instruction maps to.
type SourceMap []SourceMapElement

// SourceMapElement describes an individual element of a source mapping output by the compiler.
// The index of each element in a source map corresponds to an instruction index (not to be mistaken with offset).
type SourceMapElement struct {
	// Index refers to the index of the SourceMapElement within its parent SourceMap.
	Index int

	// Offset refers to the byte offset which marks the start of the source range the instruction maps to.
	Offset int

	// Length refers to the byte length of the source range the instruction maps to.
	Length int

	// FileID refers to the source id of the file which houses the relevant source code, or SourceMapNoFile.
	FileID int

	// JumpType refers to the SourceMapJumpType which provides information about any type of jump that occurred.
	JumpType SourceMapJumpType

	// ModifierDepth refers to the depth in which code has executed a modifier function.
	ModifierDepth int
}

// ParseSourceMap takes a source mapping string returned by the compiler and parses it into a SourceMap.
// Empty elements and empty fields inherit the value of the previous element, as the compressed format prescribes.
// An empty string yields an empty SourceMap.
func ParseSourceMap(sourceMapStr string) (SourceMap, error) {
	var sourceMap SourceMap

	// If our provided source map string is empty, there is no work to be done.
	if len(sourceMapStr) == 0 {
		return sourceMap, nil
	}

	elements := strings.Split(sourceMapStr, ";")
	sourceMap = make(SourceMap, 0, len(elements))

	// current holds the previous element's values, which carry over into fields that are left empty
	current := SourceMapElement{
		Offset: -1,
		Length: -1,
		FileID: SourceMapNoFile,
	}

	for _, element := range elements {
		current.Index = len(sourceMap)

		// If the element is empty, we use the previous one
		if len(element) == 0 {
			sourceMap = append(sourceMap, current)
			continue
		}

		fields := strings.Split(element, ":")
		var err error

		if len(fields) > 0 && fields[0] != "" {
			if current.Offset, err = strconv.Atoi(fields[0]); err != nil {
				return nil, errors.Wrapf(err, "invalid source offset in source map element %d", current.Index)
			}
		}
		if len(fields) > 1 && fields[1] != "" {
			if current.Length, err = strconv.Atoi(fields[1]); err != nil {
				return nil, errors.Wrapf(err, "invalid source length in source map element %d", current.Index)
			}
		}
		if len(fields) > 2 && fields[2] != "" {
			if current.FileID, err = strconv.Atoi(fields[2]); err != nil {
				return nil, errors.Wrapf(err, "invalid file id in source map element %d", current.Index)
			}
		}
		if len(fields) > 3 && fields[3] != "" {
			current.JumpType = SourceMapJumpType(fields[3])
		}
		if len(fields) > 4 && fields[4] != "" {
			if current.ModifierDepth, err = strconv.Atoi(fields[4]); err != nil {
				return nil, errors.Wrapf(err, "invalid modifier depth in source map element %d", current.Index)
			}
		}

		sourceMap = append(sourceMap, current)
	}

	return sourceMap, nil
}
