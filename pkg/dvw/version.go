package dvw

// Version information for the dvw module.
const (
	// Version is the current version of the dvw module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)
