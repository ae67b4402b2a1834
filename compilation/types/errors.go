package types

import "github.com/pkg/errors"

// ErrBuildInconsistency indicates that a contract listed in the artifacts is missing from the compiler output of the
// build-info document it was expected to live in. The artifacts and build info are out of sync and the project needs
// a clean rebuild.
var ErrBuildInconsistency = errors.New("artifacts and build info are inconsistent")
