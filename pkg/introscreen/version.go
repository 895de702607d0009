package introscreen

import (
	"fmt"

	"github.com/bft-labs/introscreen/pkg/host"
	"github.com/bft-labs/introscreen/pkg/lifecycle"
	"github.com/bft-labs/introscreen/pkg/log"
)

// Version information for the introscreen module.
const (
	// Version is the current version of the introscreen module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)

// Minimum versions of the sub-modules this package is built against.
const (
	minHostVersion      = "1.0.0"
	minLifecycleVersion = "2.0.0"
	minLogVersion       = "1.1.0"
)

// ModuleVersions returns the versions of all sub-modules.
func ModuleVersions() map[string]string {
	return map[string]string{
		"introscreen": Version,
		"host":        host.Version,
		"lifecycle":   lifecycle.Version,
		"log":         log.Version,
	}
}

// validateModuleVersions checks that all module versions are compatible.
// Returns an error if any module version is below the version this package requires.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"host":      {host.Version, minHostVersion},
		"lifecycle": {lifecycle.Version, minLifecycleVersion},
		"log":       {log.Version, minLogVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}

	return nil
}

// isVersionCompatible checks if version >= minVersion using semantic versioning.
// Assumes versions are in format "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
