package config

import (
	"github.com/crytic/solinspect/compilation/platforms"
	"github.com/crytic/solinspect/reporting"
	"github.com/crytic/solinspect/sizing"
	"github.com/rs/zerolog"
)

const (
	// DefaultSnapshotFile is the file name of the JSON size snapshot within the cache directory.
	DefaultSnapshotFile = ".wr_contract_sizer_output.json"

	// DefaultBoltSnapshotFile is the file name of the bolt size snapshot within the cache directory.
	DefaultBoltSnapshotFile = ".wr_contract_sizer_output.db"
)

// GetDefaultProjectConfig obtains a default configuration for a Hardhat project.
func GetDefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Artifacts: ArtifactsConfig{
			Platform:           platforms.HardhatPlatformId,
			ArtifactsDirectory: "artifacts",
			CacheDirectory:     "cache",
		},
		Sizes: SizesConfig{
			MaxContractSize: reporting.DefaultMaxContractSize,
			MinSize:         0,
			SnapshotFormat:  sizing.SnapshotFormatJSON,
		},
		Logging: LoggingConfig{
			Level:        zerolog.InfoLevel,
			NoColor:      false,
			LogDirectory: "",
		},
	}
}
