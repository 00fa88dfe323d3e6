package audit

import "errors"

// ErrNoManifest is returned when the directory has no readable _list.json.
var ErrNoManifest = errors.New("manifest unreadable")
