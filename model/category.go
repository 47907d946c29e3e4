package model

// CategoryDocument is the on-disk shape of the category registry:
// category name to subcategory name to an ordered list of cifra filenames.
//
// The registry is a curated tagging index, deliberately decoupled from the
// catalog directory tree: filenames listed here are not checked against the
// filesystem and catalog files need not be tagged anywhere. Nothing
// reconciles the two.
type CategoryDocument struct {
	Categories map[string]map[string][]string `json:"categories"`
}
