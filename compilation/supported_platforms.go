package compilation

import (
	"fmt"
	"sort"

	"github.com/crytic/solinspect/compilation/platforms"
)

// ArtifactStoreFactory creates an artifact store for a platform given its artifacts directory.
type ArtifactStoreFactory func(artifactsDirectory string) platforms.ArtifactStore

// artifactStoreFactories is a mapping of platform identifier to the factory which creates artifact stores for it. Each
// platform which provides a factory in this mapping is considered a supported platform. Items are populated in the
// init method.
var artifactStoreFactories map[string]ArtifactStoreFactory

// init is called once per inclusion of a package. This method is used on startup to populate
// artifactStoreFactories and add supported platforms.
func init() {
	factories := []ArtifactStoreFactory{
		func(artifactsDirectory string) platforms.ArtifactStore {
			return platforms.NewHardhatArtifactStore(artifactsDirectory)
		},
	}

	artifactStoreFactories = make(map[string]ArtifactStoreFactory)
	for _, factory := range factories {
		// Create a throwaway store to obtain the platform id for it.
		platformId := factory("").Platform()

		// If this platform already exists in our mapping, panic. Each platform should have a unique identifier.
		if _, exists := artifactStoreFactories[platformId]; exists {
			panic(fmt.Errorf("the compilation platform '%s' is registered with more than one provider", platformId))
		}
		artifactStoreFactories[platformId] = factory
	}
}

// GetSupportedCompilationPlatforms obtains a sorted list of the platform identifiers supported by this package.
func GetSupportedCompilationPlatforms() []string {
	platformIds := make([]string, 0, len(artifactStoreFactories))
	for platformId := range artifactStoreFactories {
		platformIds = append(platformIds, platformId)
	}
	sort.Strings(platformIds)
	return platformIds
}

// IsSupportedCompilationPlatform returns a boolean status indicating if a platform identifier is supported within this
// package.
func IsSupportedCompilationPlatform(platform string) bool {
	_, ok := artifactStoreFactories[platform]
	return ok
}

// NewArtifactStore creates an artifact store for the given platform, reading from the given artifacts directory.
func NewArtifactStore(platform string, artifactsDirectory string) (platforms.ArtifactStore, error) {
	factory, ok := artifactStoreFactories[platform]
	if !ok {
		return nil, fmt.Errorf("could not create artifact store: platform '%s' is unsupported", platform)
	}
	return factory(artifactsDirectory), nil
}
