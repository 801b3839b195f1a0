package internal

import "path/filepath"

// Paths is the conventional folder layout of a strut application,
// derived from a single root directory.
type Paths struct {
	Root        string
	App         string
	Controllers string
	Modules     string
	Views       string
	L10n        string
}

// NewPaths derives the folder layout from root.
func NewPaths(root string) Paths {
	app := filepath.Join(root, "application")
	return Paths{
		Root:        root,
		App:         app,
		Controllers: filepath.Join(app, "controller"),
		Modules:     filepath.Join(app, "module"),
		Views:       filepath.Join(app, "view"),
		L10n:        filepath.Join(root, "resource", "l10n"),
	}
}
