package domain

import "errors"

// ErrMazeNotFound is returned when a maze name cannot be found in the store.
var ErrMazeNotFound = errors.New("maze not found")

// ErrInvalidDimensions is returned when a grid is created with a non-positive width or height,
// or with more cells than the configured limit.
var ErrInvalidDimensions = errors.New("invalid grid dimensions")

// ErrMissingStart is returned when a search is requested on a grid without a Start cell.
var ErrMissingStart = errors.New("grid has no start cell")

// ErrMissingDestination is returned when a search is requested on a grid without a Destination cell.
var ErrMissingDestination = errors.New("grid has no destination cell")

// ErrUnknownMode is returned when a search mode name does not match any known strategy.
var ErrUnknownMode = errors.New("unknown search mode")

// ErrSearchLimit is returned when a search explores more cells than the configured budget.
// The partial result is returned alongside it.
var ErrSearchLimit = errors.New("search exceeded explored cell limit")

// ErrMazeExists is returned when creating a maze under a name that is already taken.
var ErrMazeExists = errors.New("maze already exists")

// ErrInvalidName is returned for maze names that are empty or contain path separators.
var ErrInvalidName = errors.New("invalid maze name")

// ErrReadOnly is returned by stores that refuse writes.
var ErrReadOnly = errors.New("maze store is read-only")
