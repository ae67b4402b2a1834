package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/crytic/solinspect/logging/colors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddAndRemoveWriter will test to Logger.AddWriter and Logger.RemoveWriter functions to ensure that they work as expected.
func TestAddAndRemoveWriter(t *testing.T) {
	// Create a base logger
	logger := NewLogger(zerolog.InfoLevel)

	// Add three types of writers
	logger.AddWriter(os.Stdout, UNSTRUCTURED, true)
	logger.AddWriter(os.Stderr, UNSTRUCTURED, false)
	logger.AddWriter(os.Stdin, STRUCTURED, false)

	// We should expect the underlying data structures are correctly updated
	assert.Equal(t, 1, len(logger.unstructuredWriters))
	assert.Equal(t, 1, len(logger.unstructuredColorWriters))
	assert.Equal(t, 1, len(logger.structuredWriters))

	// Try to add duplicate writers
	logger.AddWriter(os.Stdout, UNSTRUCTURED, true)
	logger.AddWriter(os.Stderr, UNSTRUCTURED, false)
	logger.AddWriter(os.Stdin, STRUCTURED, false)

	// Ensure that the lengths of the lists have not changed
	assert.Equal(t, 1, len(logger.unstructuredWriters))
	assert.Equal(t, 1, len(logger.unstructuredColorWriters))
	assert.Equal(t, 1, len(logger.structuredWriters))

	// Remove each writer
	logger.RemoveWriter(os.Stdout, UNSTRUCTURED, true)
	logger.RemoveWriter(os.Stderr, UNSTRUCTURED, false)
	logger.RemoveWriter(os.Stdin, STRUCTURED, false)

	assert.Equal(t, 0, len(logger.unstructuredWriters))
	assert.Equal(t, 0, len(logger.unstructuredColorWriters))
	assert.Equal(t, 0, len(logger.structuredWriters))
}

// TestDisabledColors verifies the behavior of the unstructured colored logger when colors are disabled.
func TestDisabledColors(t *testing.T) {
	colors.DisableColor()
	defer colors.EnableColor()

	logger := NewLogger(zerolog.InfoLevel)
	var buf bytes.Buffer
	logger.AddWriter(&buf, UNSTRUCTURED, true)

	logger.Info("foo")

	// Ensure that msg doesn't include colors
	prefix := fmt.Sprintf("%s %s", colors.LEFT_ARROW, "foo")
	assert.True(t, strings.Contains(buf.String(), prefix))
	assert.False(t, strings.Contains(buf.String(), "\x1b["))
}

// TestStructuredSubLogger verifies that sub-logger context, errors and structured info end up in the JSON output.
func TestStructuredSubLogger(t *testing.T) {
	logger := NewLogger(zerolog.InfoLevel)
	var buf bytes.Buffer
	logger.AddWriter(&buf, STRUCTURED, false)

	sub := logger.NewSubLogger(SERVICE_KEY, ANALYSIS_SERVICE)
	sub.Warn("decoded ", 3, " contracts", errors.New("boom"), StructuredLogInfo{"contracts": 3})

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "warn", event["level"])
	assert.Equal(t, ANALYSIS_SERVICE, event[SERVICE_KEY])
	assert.Equal(t, "decoded 3 contracts", event["message"])
	assert.Equal(t, "boom", event["error"])
	assert.NotNil(t, event["info"])

	// Debug events are below the configured level and must be dropped
	buf.Reset()
	sub.Debug("hidden")
	assert.Empty(t, buf.String())
}
