package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/crytic/solinspect/compilation"
	"github.com/crytic/solinspect/sizing"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ProjectConfig describes the configuration of a project inspected by solinspect.
type ProjectConfig struct {
	// Artifacts describes where the compilation artifacts of the project are found.
	Artifacts ArtifactsConfig `json:"artifacts"`

	// Sizes describes the configuration used by the contract sizes report.
	Sizes SizesConfig `json:"sizes"`

	// Logging describes the configuration used for logging.
	Logging LoggingConfig `json:"logging"`
}

// ArtifactsConfig describes where the compilation artifacts of a project are found.
type ArtifactsConfig struct {
	// Platform references an identifier indicating which compilation platform produced the artifacts.
	Platform string `json:"platform"`

	// ArtifactsDirectory is the directory holding the contract artifacts and build-info documents, relative to the
	// working directory.
	ArtifactsDirectory string `json:"artifactsDirectory"`

	// CacheDirectory is the directory in which solinspect keeps the size snapshot, relative to the working directory.
	CacheDirectory string `json:"cacheDirectory"`
}

// SizesConfig describes the configuration used by the contract sizes report.
type SizesConfig struct {
	// MaxContractSize is the deployed code size above which sizes are highlighted in red. Sizes above 85% of it are
	// highlighted in yellow. Zero disables highlighting.
	MaxContractSize int `json:"maxContractSize"`

	// MinSize hides contracts whose code and init sizes add up to less than this size.
	MinSize int `json:"minSize"`

	// SnapshotFormat is the format of the size snapshot used for diffing, "json" or "bolt".
	SnapshotFormat string `json:"snapshotFormat"`

	// SnapshotFile is the file name of the size snapshot within the cache directory. If empty, a default name for the
	// format is used.
	SnapshotFile string `json:"snapshotFile"`
}

// LoggingConfig describes the configuration options used for logging
type LoggingConfig struct {
	// Level describes whether logs of certain severity levels (eg info, warning, etc.) will be emitted or discarded.
	// Increasing level values represent more severe logs
	Level zerolog.Level `json:"level"`

	// NoColor disables colored console and report output.
	NoColor bool `json:"noColor"`

	// LogDirectory describes the directory where structured log _files_ will be outputted. If the string is empty, then
	// no log files are kept
	LogDirectory string `json:"logDirectory"`
}

// SnapshotPath returns the path of the size snapshot.
func (p *ProjectConfig) SnapshotPath() string {
	file := p.Sizes.SnapshotFile
	if file == "" {
		file = DefaultSnapshotFile
		if p.Sizes.SnapshotFormat == sizing.SnapshotFormatBolt {
			file = DefaultBoltSnapshotFile
		}
	}
	return filepath.Join(p.Artifacts.CacheDirectory, file)
}

// ReadProjectConfigFromFile reads a JSON-serialized ProjectConfig from a provided file path. Fields absent from the
// file keep their default values.
// Returns the ProjectConfig if it succeeds, or an error if one occurs.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	// Read our project configuration file data
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Parse the project configuration over the defaults
	projectConfig := GetDefaultProjectConfig()
	err = json.Unmarshal(b, projectConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse project config %s", path)
	}

	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path in a JSON-serialized format.
// Returns an error if one occurs.
func (p *ProjectConfig) WriteToFile(path string) error {
	// Serialize the configuration
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}

	// Save it to the provided output path and return the result
	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Validate validates that the ProjectConfig meets certain requirements.
// Returns an error if one occurs.
func (p *ProjectConfig) Validate() error {
	// Verify the platform is supported
	if !compilation.IsSupportedCompilationPlatform(p.Artifacts.Platform) {
		return errors.Errorf("compilation platform '%s' is unsupported, supported platforms: %v", p.Artifacts.Platform, compilation.GetSupportedCompilationPlatforms())
	}

	// Verify the directories are set
	if p.Artifacts.ArtifactsDirectory == "" {
		return errors.Errorf("artifacts directory must be set")
	}
	if p.Artifacts.CacheDirectory == "" {
		return errors.Errorf("cache directory must be set")
	}

	// Verify the size thresholds are non-negative
	if p.Sizes.MaxContractSize < 0 {
		return errors.Errorf("max contract size must not be negative")
	}
	if p.Sizes.MinSize < 0 {
		return errors.Errorf("min size must not be negative")
	}

	// Verify the snapshot format is known
	if _, err := sizing.NewSnapshotStore(p.Sizes.SnapshotFormat, p.SnapshotPath()); err != nil {
		return err
	}
	return nil
}
