package domain

import "errors"

// ErrAutomatonNotFound is returned when no definition exists under a name.
var ErrAutomatonNotFound = errors.New("automaton not found")

// ErrReadOnlyLoader is returned when registering a definition against a loader that cannot store it.
var ErrReadOnlyLoader = errors.New("loader is read-only")

// ErrInvalidDefinition wraps parse failures and rejected construction calls.
var ErrInvalidDefinition = errors.New("invalid definition")
