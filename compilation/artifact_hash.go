package compilation

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/crytic/solinspect/compilation/types"
	"github.com/crytic/solinspect/logging"
	"github.com/crytic/solinspect/logging/colors"
	"github.com/crytic/solinspect/utils"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// ArtifactHashCacheFileName is the name of the file used to store the artifact hash.
const ArtifactHashCacheFileName = ".solinspect-artifact-hash"

// ArtifactHashCache stores the hash of compilation artifacts along with metadata.
type ArtifactHashCache struct {
	// Hash is the Keccak-256 hash of the compiled bytecode.
	Hash string `json:"hash"`
	// Timestamp is when the hash was computed.
	Timestamp time.Time `json:"timestamp"`
}

// ComputeArtifactHash computes a Keccak-256 hash of the bytecode of every contract in the provided build-info
// documents. Contracts are hashed in order of their fully qualified names, so the hash does not depend on map
// iteration or on how contracts are split across documents.
func ComputeArtifactHash(documents []types.BuildInfoDocument) string {
	hasher := sha3.NewLegacyKeccak256()

	// Collect all contract bytecodes with their names for deterministic ordering
	type contractBytecode struct {
		name            string
		initBytecode    string
		runtimeBytecode string
	}
	var contracts []contractBytecode

	for _, document := range documents {
		for sourceName, sourceContracts := range document.Info.Output.Contracts {
			for contractName, contract := range sourceContracts {
				contracts = append(contracts, contractBytecode{
					name:            sourceName + ":" + contractName,
					initBytecode:    contract.EVM.Bytecode.HexObject(),
					runtimeBytecode: contract.EVM.DeployedBytecode.HexObject(),
				})
			}
		}
	}

	// Sort by contract name for deterministic hashing
	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].name < contracts[j].name
	})

	// Hash each contract's bytecode. Lengths delimit the fields.
	for _, c := range contracts {
		for _, field := range []string{c.name, c.initBytecode, c.runtimeBytecode} {
			_, _ = fmt.Fprintf(hasher, "%d:%s", len(field), field)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil))
}

// LoadArtifactHashCache loads the artifact hash cache from the specified directory.
// Returns nil if the cache file does not exist or cannot be parsed.
func LoadArtifactHashCache(directory string) *ArtifactHashCache {
	cachePath := filepath.Join(directory, ArtifactHashCacheFileName)
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil
	}

	var cache ArtifactHashCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil
	}

	return &cache
}

// SaveArtifactHashCache saves the artifact hash cache to the specified directory.
// Returns an error if the cache cannot be written.
func SaveArtifactHashCache(directory string, cache *ArtifactHashCache) error {
	// Ensure the directory exists
	if err := utils.MakeDirectory(directory); err != nil {
		return errors.Wrap(err, "failed to create cache directory")
	}

	cachePath := filepath.Join(directory, ArtifactHashCacheFileName)
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal cache")
	}

	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write cache file")
	}

	return nil
}

// NotifyArtifactHashStatus compares the current artifact hash with a cached hash and logs whether the size difference
// is taken against new build artifacts. It also updates the cache with the new hash.
// Returns true if the artifacts are the same as on the previous run.
func NotifyArtifactHashStatus(documents []types.BuildInfoDocument, cacheDirectory string, logger *logging.Logger) bool {
	if len(documents) == 0 {
		return false
	}

	// Compute the current hash and load the cached one
	currentHash := ComputeArtifactHash(documents)
	cachedHash := LoadArtifactHashCache(cacheDirectory)

	unchanged := cachedHash != nil && cachedHash.Hash == currentHash
	if unchanged {
		timeSince := time.Since(cachedHash.Timestamp)
		logger.Warn(
			colors.Bold, "artifacts: ", colors.Reset,
			"Sizes are compared against the ", colors.YellowBold, "same", colors.Reset,
			" build artifacts as previously (last run: ", formatDuration(timeSince), " ago)",
		)
	} else {
		logger.Info(
			colors.Bold, "artifacts: ", colors.Reset,
			"Sizes are compared against a ", colors.GreenBold, "new", colors.Reset, " set of build artifacts",
		)
	}

	// Update the cache with the current hash
	newCache := &ArtifactHashCache{
		Hash:      currentHash,
		Timestamp: time.Now(),
	}
	if err := SaveArtifactHashCache(cacheDirectory, newCache); err != nil {
		logger.Warn("Failed to save artifact hash cache", err)
	}
	return unchanged
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	days := int(d.Hours() / 24)
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
