package loader

import "errors"

var (
	// ErrListUnavailable means the manifest could not be read; nothing else
	// can be shown.
	ErrListUnavailable = errors.New("list unavailable")
	// ErrLevelUnavailable marks a single slot whose document failed.
	ErrLevelUnavailable = errors.New("level unavailable")
	// ErrUnavailable is returned for optional documents (editors, packs).
	ErrUnavailable = errors.New("document unavailable")
)
