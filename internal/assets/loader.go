package assets

// Known resource file names. Loaders accept exactly these.
const (
	EscapesFile       = "escapes.yaml"
	AbbreviationsFile = "abbreviations.yaml"
	WhitelistFile     = "whitelist.yaml"
	PromptFile        = "prompt.txt"
)

// KnownFiles lists every resource file a loader may be asked for.
func KnownFiles() []string {
	return []string{EscapesFile, AbbreviationsFile, WhitelistFile, PromptFile}
}

// Loader defines the contract for loading resource files by name.
// Implementations may load from embedded assets, filesystem, S3, database, etc.
type Loader interface {
	// Load returns the raw content of a known resource file.
	// Returns ErrResourceNotFound if the file doesn't exist.
	// Returns ErrInvalidResourceName if the name is not a known resource.
	Load(name string) ([]byte, error)
}
