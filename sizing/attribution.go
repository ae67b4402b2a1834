package sizing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/core/vm"
	"github.com/crytic/solinspect/compilation/types"
)

// invalidOpcodeHex is the hex form of the INVALID opcode the compiler emits as a terminating assertion.
var invalidOpcodeHex = fmt.Sprintf("%02x", byte(vm.INVALID))

// Attribution describes how the bytes of a single bytecode object are distributed over their contributors.
type Attribution struct {
	// TotalBytes is the size of the bytecode object, excluding any embedded tail.
	TotalBytes int

	// Sizes maps each contributor to the number of bytes attributed to it. Contributors with no bytes are absent.
	Sizes map[SourceID]int

	// MetadataBlob holds the CBOR metadata body (without its length field) when a metadata tail was attributed.
	MetadataBlob []byte
}

// add attributes size bytes to the given contributor. Non-positive sizes are ignored.
func (a *Attribution) add(id SourceID, size int) {
	if size > 0 {
		a.Sizes[id] += size
	}
}

// AttributeBytecode walks the source map alongside the hex encoded bytecode and attributes every instruction to the
// source active at that instruction. The trailing region not covered by the source map is reconciled as follows:
// tailLen hex characters belong to an embedded copy of other code (the runtime code appended to init code) and are
// not counted, a terminating INVALID opcode belongs to the last active source, and if allowMetadata is set the
// remainder ends with a metadata blob whose length is encoded in the last two bytes. Anything left is attributed to
// Unknown. Returns a *MalformedBytecodeError if the lengths cannot be reconciled.
func AttributeBytecode(sourceMap string, bytecode string, tailLen int, allowMetadata bool) (*Attribution, error) {
	if len(bytecode)%2 != 0 {
		return nil, &MalformedBytecodeError{Reason: fmt.Sprintf("odd bytecode length %d", len(bytecode))}
	}
	elements, err := types.ParseSourceMap(sourceMap)
	if err != nil {
		return nil, err
	}

	attribution := &Attribution{
		Sizes: make(map[SourceID]int),
	}

	// Positions are tracked in hex characters, two per byte.
	decodePos := 0
	current := NoSource
	for _, element := range elements {
		current = sourceIDFromFileID(element.FileID)

		n, err := instructionLength(bytecode, decodePos)
		if err != nil {
			return nil, err
		}
		attribution.add(current, n)
		decodePos += n * 2
	}

	unknown := len(bytecode) - decodePos
	if unknown > tailLen && unknown >= 2 && strings.EqualFold(bytecode[decodePos:decodePos+2], invalidOpcodeHex) {
		attribution.add(current, 1)
		unknown -= 2
	}

	if unknown > tailLen {
		unknown -= tailLen
		if allowMetadata && unknown >= 4 {
			lengthField, err := strconv.ParseUint(bytecode[len(bytecode)-4:], 16, 16)
			if err != nil {
				return nil, &MalformedBytecodeError{Reason: fmt.Sprintf("invalid metadata length field %q", bytecode[len(bytecode)-4:])}
			}
			metadataLen := int(lengthField) + 2
			if metadataLen*2 > unknown {
				return nil, &MalformedBytecodeError{Reason: "inconsistent metadata size", Remaining: unknown, Expected: metadataLen * 2}
			}
			unknown -= metadataLen * 2
			attribution.add(Metadata, metadataLen)
			attribution.MetadataBlob = common.FromHex(bytecode[len(bytecode)-metadataLen*2 : len(bytecode)-4])
		}
		attribution.add(Unknown, unknown/2)
	} else if unknown < tailLen {
		return nil, &MalformedBytecodeError{Reason: "inconsistent bytecode size", Remaining: unknown, Expected: tailLen}
	}

	attribution.TotalBytes = (len(bytecode) - tailLen) / 2
	return attribution, nil
}

// instructionLength returns the length in bytes of the instruction starting at the given hex position. PUSH1-PUSH16
// (0x60-0x6f) carry 1-16 operand bytes and PUSH17-PUSH32 (0x70-0x7f) 16 more. Positions past the end of the bytecode
// decode as a single byte so the overrun surfaces during tail reconciliation.
func instructionLength(bytecode string, pos int) (int, error) {
	if pos >= len(bytecode) {
		return 1, nil
	}

	n := 1
	switch bytecode[pos] {
	case '7':
		n += 16
		fallthrough
	case '6':
		operand, err := strconv.ParseUint(bytecode[pos+1:pos+2], 16, 8)
		if err != nil {
			return 0, &MalformedBytecodeError{Reason: fmt.Sprintf("invalid opcode %q at offset %d", bytecode[pos:pos+2], pos/2)}
		}
		n += int(operand) + 1
	}
	return n, nil
}
