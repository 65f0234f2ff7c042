package assets

// defaultLoader is the package-level embedded loader for callers that do not
// configure a resources directory.
var defaultLoader = NewEmbeddedLoader()

// Load returns an embedded resource file by name using the default loader.
// Returns ErrResourceNotFound if the file does not exist.
// Returns ErrInvalidResourceName if the name is not a known resource.
func Load(name string) ([]byte, error) {
	return defaultLoader.Load(name)
}
