package router

import (
	rterrors "github.com/vango-dev/vroute/internal/errors"
)

// Error is the concrete type of every error returned by this package.
type Error = rterrors.RouterError

// Error categories, usable with errors.Is.
var (
	// ErrConfig reports a malformed route configuration.
	ErrConfig = rterrors.ErrConfig

	// ErrNotFound reports a path or path prefix missing from the registry.
	ErrNotFound = rterrors.ErrNotFound

	// ErrMissingParam reports a navigation target without a path.
	ErrMissingParam = rterrors.ErrMissingParam

	// ErrState reports a lifecycle call that does not match router state.
	ErrState = rterrors.ErrState
)
