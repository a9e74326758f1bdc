package readme

import "errors"

var (
	// ErrFetch means the document could not be retrieved.
	ErrFetch = errors.New("fetching document failed")

	// ErrSectionNotFound means the options heading or its table is gone,
	// which usually means the upstream README was restructured.
	ErrSectionNotFound = errors.New("options section not found")
)
