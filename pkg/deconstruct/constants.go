package deconstruct

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Pipeline completed
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid options or deconstruct.yaml
	ExitInputError        = 11 // Input path missing, unreadable, or not a file/directory
	ExitUnsupportedFormat = 12 // Input file suffix is not a known container format
	ExitMissingMetadata   = 13 // metadata.json missing or without a name
	ExitManifestFailed    = 14 // package.json could not be produced
)

// Files read from the working directory.
const (
	MetadataFile     = "metadata.json"
	CatalogFile      = "presets.json"
	SpriteFile       = "icons.svg"
	TranslationsFile = "translations.json"
	DefaultsFile     = "defaults.json"
)

// Output layout.
const (
	PresetsDir        = "presets"
	FieldsDir         = "fields"
	IconsDir          = "icons"
	MessagesDir       = "messages"
	ManifestFile      = "package.json"
	TempDirPrefix     = "mapeo-settings-"
	ManifestNameToken = "{name}"
)

// DefaultRelayFiles is the set copied verbatim from the working directory to the output.
var DefaultRelayFiles = []string{MetadataFile, DefaultsFile}

// DefaultCleanupFiles is the set removed from the output once decomposition is done.
var DefaultCleanupFiles = []string{"icons.png", SpriteFile, TranslationsFile, "VERSION", "style.css", CatalogFile}
