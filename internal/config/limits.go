package config

const (
	// MaxImportBytes caps the size of an imported plan file.
	// Real plans are a few hundred kilobytes at most; the HTTP layer applies
	// the same cap to request bodies.
	MaxImportBytes = 10 * 1024 * 1024

	// MaxFileNameLength is the maximum length of generated export/print file names
	MaxFileNameLength = 120
)
