package contracts

import (
	"path"
	"strings"

	"github.com/crytic/solinspect/compilation/platforms"
	"github.com/crytic/solinspect/logging"
	"github.com/pkg/errors"
)

// ErrMissingDebugFile indicates that the debug file of a contract could not be read while the project has more than
// one build-info document, so the contract cannot be associated with its compilation unit.
var ErrMissingDebugFile = errors.New("contract debug file is missing")

// nameState tracks how many contracts declare a given name.
type nameState int

const (
	nameUnseen nameState = iota
	nameSeenOnce
	nameConflicted
)

// Resolve enumerates every contract in the artifact store and returns descriptions of those accepted by the filter,
// in the store's order. Name conflicts are detected across all contracts, including those the filter rejects. When
// the store holds more than one build-info document, every selected contract is associated with the build-info
// document its debug file references.
func Resolve(store platforms.ArtifactStore, filter ContractFilter) ([]ContractDescription, error) {
	logger := logging.GlobalLogger.NewSubLogger(logging.SERVICE_KEY, logging.COMPILATION_SERVICE)

	buildInfoPaths, err := store.BuildInfoPaths()
	if err != nil {
		return nil, err
	}
	fullyQualifiedNames, err := store.FullyQualifiedNames()
	if err != nil {
		return nil, err
	}

	names := make(map[string]nameState)
	var descriptions []ContractDescription
	for _, fullyQualifiedName := range fullyQualifiedNames {
		artifact, err := store.ReadArtifact(fullyQualifiedName)
		if err != nil {
			return nil, err
		}

		if names[artifact.ContractName] == nameUnseen {
			names[artifact.ContractName] = nameSeenOnce
		} else {
			names[artifact.ContractName] = nameConflicted
		}

		if !filter.Accepts(artifact.ContractName, fullyQualifiedName) {
			continue
		}

		description := ContractDescription{
			SourceName:   artifact.SourceName,
			ContractName: artifact.ContractName,
		}
		if len(buildInfoPaths) > 1 {
			debugFile, err := store.ReadDebugFile(fullyQualifiedName)
			if err != nil {
				return nil, errors.Wrapf(ErrMissingDebugFile, "%s: %v", fullyQualifiedName, err)
			}
			description.BuildInfoFile = path.Base(strings.ReplaceAll(debugFile.BuildInfo, "\\", "/"))
		}
		descriptions = append(descriptions, description)
	}

	for i := range descriptions {
		descriptions[i].ConflictedName = names[descriptions[i].ContractName] == nameConflicted
	}

	logger.Debug("Resolved ", len(descriptions), " of ", len(fullyQualifiedNames), " contracts from ", len(buildInfoPaths), " build-info documents")
	return descriptions, nil
}
