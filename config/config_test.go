package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultProjectConfig tests that the default configuration is valid.
func TestDefaultProjectConfig(t *testing.T) {
	projectConfig := GetDefaultProjectConfig()
	require.NoError(t, projectConfig.Validate())
	assert.EqualValues(t, filepath.Join("cache", DefaultSnapshotFile), projectConfig.SnapshotPath())

	projectConfig.Sizes.SnapshotFormat = "bolt"
	assert.EqualValues(t, filepath.Join("cache", DefaultBoltSnapshotFile), projectConfig.SnapshotPath())

	projectConfig.Sizes.SnapshotFile = "sizes.db"
	assert.EqualValues(t, filepath.Join("cache", "sizes.db"), projectConfig.SnapshotPath())
}

// TestProjectConfigRoundTrip tests writing a configuration and reading it back, and that fields absent from a file
// keep their defaults.
func TestProjectConfigRoundTrip(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "solinspect.json")

	projectConfig := GetDefaultProjectConfig()
	projectConfig.Sizes.MinSize = 1000
	projectConfig.Logging.Level = zerolog.DebugLevel
	require.NoError(t, projectConfig.WriteToFile(path))

	read, err := ReadProjectConfigFromFile(path)
	require.NoError(t, err)
	assert.EqualValues(t, projectConfig, read)

	require.NoError(t, os.WriteFile(path, []byte(`{"sizes": {"minSize": 5}, "logging": {"level": "warn"}}`), 0644))
	read, err = ReadProjectConfigFromFile(path)
	require.NoError(t, err)
	assert.EqualValues(t, 5, read.Sizes.MinSize)
	assert.EqualValues(t, zerolog.WarnLevel, read.Logging.Level)
	assert.EqualValues(t, "artifacts", read.Artifacts.ArtifactsDirectory)

	require.NoError(t, os.WriteFile(path, []byte(`{"sizes": `), 0644))
	_, err = ReadProjectConfigFromFile(path)
	assert.Error(t, err)

	_, err = ReadProjectConfigFromFile(filepath.Join(directory, "missing.json"))
	assert.Error(t, err)
}

// TestProjectConfigValidate tests that invalid configurations are rejected.
func TestProjectConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *ProjectConfig)
	}{
		{"unsupported platform", func(p *ProjectConfig) { p.Artifacts.Platform = "truffle" }},
		{"no artifacts directory", func(p *ProjectConfig) { p.Artifacts.ArtifactsDirectory = "" }},
		{"no cache directory", func(p *ProjectConfig) { p.Artifacts.CacheDirectory = "" }},
		{"negative max size", func(p *ProjectConfig) { p.Sizes.MaxContractSize = -1 }},
		{"negative min size", func(p *ProjectConfig) { p.Sizes.MinSize = -1 }},
		{"unknown snapshot format", func(p *ProjectConfig) { p.Sizes.SnapshotFormat = "yaml" }},
	}
	for _, test := range tests {
		projectConfig := GetDefaultProjectConfig()
		test.modify(projectConfig)
		assert.Error(t, projectConfig.Validate(), test.name)
	}
}
