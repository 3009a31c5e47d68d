package domain

import "errors"

// Validation and lookup failures surfaced to the presentation layer.
// Messages are user-facing; screens render them as toasts verbatim.
var (
	ErrItemRequired   = errors.New("Item required")
	ErrNameRequired   = errors.New("Name required")
	ErrFolderNotEmpty = errors.New("Folder not empty")
	ErrOwnParent      = errors.New("Folder cannot be its own parent")
	ErrCycle          = errors.New("Cannot move folder into its own subfolder")
	ErrNotFound       = errors.New("not found")
)
