package catalog

import "errors"

var (
	// ErrCifraNotFound means the requested path exists nowhere under the catalog root.
	ErrCifraNotFound = errors.New("cifra not found")
	// ErrForbiddenPath means the requested path resolves outside the catalog root.
	ErrForbiddenPath = errors.New("path escapes catalog root")
	// ErrNotText means the file does not carry the catalog's text extension.
	ErrNotText = errors.New("only .txt files are allowed")
)
