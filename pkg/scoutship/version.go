package scoutship

import (
	"github.com/bft-labs/scoutship/pkg/dvw"
	"github.com/bft-labs/scoutship/pkg/log"
	"github.com/bft-labs/scoutship/pkg/sender"
	"github.com/bft-labs/scoutship/pkg/state"
)

// Version constants for the scoutship module.
const (
	// Version is the current version of the scoutship module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version compatible with this module.
	MinCompatibleVersion = "1.0.0"
)

// ModuleVersions returns the versions of all scoutship modules.
// Useful for diagnostics and support requests.
func ModuleVersions() map[string]string {
	return map[string]string{
		"scoutship": Version,
		"dvw":       dvw.Version,
		"sender":    sender.Version,
		"state":     state.Version,
		"log":       log.Version,
	}
}

// CompatibilityMatrix returns the minimum compatible version for each module.
func CompatibilityMatrix() map[string]string {
	return map[string]string{
		"scoutship": MinCompatibleVersion,
		"dvw":       dvw.MinCompatibleVersion,
		"sender":    sender.MinCompatibleVersion,
		"state":     state.MinCompatibleVersion,
		"log":       log.MinCompatibleVersion,
	}
}
