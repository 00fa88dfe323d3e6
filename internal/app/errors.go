package service

import (
	"errors"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/loader"
)

var (
	// ErrNotFound is returned for an unknown rank or user.
	ErrNotFound = errors.New("not found")
	// ErrListUnavailable is returned when the manifest cannot be loaded.
	ErrListUnavailable = loader.ErrListUnavailable
	// ErrLevelUnavailable is returned when the requested slot failed to load.
	ErrLevelUnavailable = loader.ErrLevelUnavailable
)
