package sizing

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertAttributionTotals verifies that every byte of the bytecode is attributed exactly once.
func assertAttributionTotals(t *testing.T, attribution *Attribution, bytecode string, tailLen int) {
	assert.EqualValues(t, (len(bytecode)-tailLen)/2, attribution.TotalBytes)
	sum := 0
	for _, size := range attribution.Sizes {
		sum += size
	}
	assert.EqualValues(t, attribution.TotalBytes, sum)
}

// TestAttributeBytecodeMetadataTail tests that a terminating INVALID opcode is attributed to the active source and
// the metadata tail, including its length field, to the metadata contributor.
func TestAttributeBytecodeMetadataTail(t *testing.T) {
	bytecode := "6001600255fe" + "aabb" + "0002"
	attribution, err := AttributeBytecode("0:1:3;1:1:;2:1:3", bytecode, 0, true)
	require.NoError(t, err)

	assert.EqualValues(t, map[SourceID]int{
		Source(3): 6,
		Metadata:  4,
	}, attribution.Sizes)
	assert.EqualValues(t, []byte{0xaa, 0xbb}, attribution.MetadataBlob)
	assertAttributionTotals(t, attribution, bytecode, 0)
}

// TestAttributeBytecodeStickySourceID tests that elements omitting the source id inherit the previous one.
func TestAttributeBytecodeStickySourceID(t *testing.T) {
	bytecode := "6001600255"
	attribution, err := AttributeBytecode("0:1:3;1:1:;2:1:4", bytecode, 0, true)
	require.NoError(t, err)
	assert.EqualValues(t, map[SourceID]int{
		Source(3): 4,
		Source(4): 1,
	}, attribution.Sizes)
	assertAttributionTotals(t, attribution, bytecode, 0)

	// Empty elements inherit everything.
	attribution, err = AttributeBytecode("0:1:3;;", bytecode, 0, true)
	require.NoError(t, err)
	assert.EqualValues(t, map[SourceID]int{Source(3): 5}, attribution.Sizes)
}

// TestAttributeBytecodeNonMapped tests bytecode whose source map never declares a source.
func TestAttributeBytecodeNonMapped(t *testing.T) {
	bytecode := "6001600255"
	attribution, err := AttributeBytecode(";;", bytecode, 0, false)
	require.NoError(t, err)
	assert.EqualValues(t, map[SourceID]int{NoSource: 5}, attribution.Sizes)
	assertAttributionTotals(t, attribution, bytecode, 0)

	attribution, err = AttributeBytecode("1:2:-1", "5b", 0, true)
	require.NoError(t, err)
	assert.EqualValues(t, map[SourceID]int{NoSource: 1}, attribution.Sizes)

	// Without any source map elements nothing is decoded as instructions, so the bytes remain unaccounted for.
	attribution, err = AttributeBytecode("", bytecode, 0, false)
	require.NoError(t, err)
	assert.EqualValues(t, map[SourceID]int{Unknown: 5}, attribution.Sizes)
	assertAttributionTotals(t, attribution, bytecode, 0)

	// Empty bytecode has no size at all.
	attribution, err = AttributeBytecode("", "", 0, true)
	require.NoError(t, err)
	assert.Empty(t, attribution.Sizes)
	assert.EqualValues(t, 0, attribution.TotalBytes)
}

// TestAttributeBytecodePushLengths tests instruction lengths of the push families.
func TestAttributeBytecodePushLengths(t *testing.T) {
	tests := []struct {
		opcode string
		length int
	}{
		{"60", 2},
		{"6f", 17},
		{"70", 18},
		{"7f", 33},
		{"5b", 1},
		{"80", 1},
		{"00", 1},
	}
	for _, test := range tests {
		bytecode := test.opcode + strings.Repeat("00", test.length-1)
		attribution, err := AttributeBytecode("0:1:0", bytecode, 0, false)
		require.NoError(t, err, test.opcode)
		assert.EqualValues(t, map[SourceID]int{Source(0): test.length}, attribution.Sizes, test.opcode)
	}
}

// TestAttributeBytecodeEmbeddedTail tests init code decoding, where the deployed code is appended to the init code
// and excluded from its size.
func TestAttributeBytecodeEmbeddedTail(t *testing.T) {
	deployed := "600055"
	initCode := "60806000f3fe" + deployed
	attribution, err := AttributeBytecode("0:1:1;:;:", initCode, len(deployed), false)
	require.NoError(t, err)
	assert.EqualValues(t, map[SourceID]int{Source(1): 6}, attribution.Sizes)
	assert.Nil(t, attribution.MetadataBlob)
	assertAttributionTotals(t, attribution, initCode, len(deployed))

	// Bytes between the last instruction and the embedded code are unknown.
	initCode = "6080" + "aaaa" + deployed
	attribution, err = AttributeBytecode("0:1:1", initCode, len(deployed), false)
	require.NoError(t, err)
	assert.EqualValues(t, map[SourceID]int{Source(1): 2, Unknown: 2}, attribution.Sizes)
	assertAttributionTotals(t, attribution, initCode, len(deployed))
}

// TestAttributeBytecodeTerminatingOpcodeCase tests that the terminating INVALID opcode is matched case-insensitively.
func TestAttributeBytecodeTerminatingOpcodeCase(t *testing.T) {
	attribution, err := AttributeBytecode("0:1:2", "5bFE", 0, true)
	require.NoError(t, err)
	assert.EqualValues(t, map[SourceID]int{Source(2): 2}, attribution.Sizes)
}

// TestAttributeBytecodeUnknownBytes tests that bytes left after the metadata are attributed to Unknown.
func TestAttributeBytecodeUnknownBytes(t *testing.T) {
	bytecode := "5b" + "1234" + "0001"
	attribution, err := AttributeBytecode("0:1:0", bytecode, 0, true)
	require.NoError(t, err)
	assert.EqualValues(t, map[SourceID]int{Source(0): 1, Metadata: 3, Unknown: 1}, attribution.Sizes)
	assertAttributionTotals(t, attribution, bytecode, 0)
}

// TestAttributeBytecodeMalformed tests that irreconcilable lengths raise a MalformedBytecodeError.
func TestAttributeBytecodeMalformed(t *testing.T) {
	tests := []struct {
		name          string
		sourceMap     string
		bytecode      string
		tailLen       int
		allowMetadata bool
	}{
		{"shorter than embedded code", "0:1:1;:;:", "6080600055", 6, false},
		{"truncated push operand", "0:1:0", "6100", 0, false},
		{"metadata longer than remainder", "0:1:0", "5bffff", 0, true},
		{"odd length", "0:1:0", "5b0", 0, false},
		{"invalid push operand nibble", "0:1:0", "6g00", 0, false},
	}
	for _, test := range tests {
		_, err := AttributeBytecode(test.sourceMap, test.bytecode, test.tailLen, test.allowMetadata)
		require.Error(t, err, test.name)

		var malformed *MalformedBytecodeError
		assert.True(t, errors.As(err, &malformed), test.name)
	}

	_, err := AttributeBytecode("0:1:1;:;:", "6080600055", 6, false)
	assert.EqualError(t, err, "inconsistent bytecode size: 0 < 6")
}

// TestAttributeBytecodeInvalidSourceMap tests that unparsable source maps are reported.
func TestAttributeBytecodeInvalidSourceMap(t *testing.T) {
	_, err := AttributeBytecode("0:1:x", "5b", 0, false)
	assert.Error(t, err)
}
