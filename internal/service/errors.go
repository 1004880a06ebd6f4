package service

import "errors"

// Error taxonomy surfaced to the handler layer. Handlers map these to
// HTTP statuses; the stores themselves only report mechanical failures.
var (
	// ErrNotFound means the requested post, tag, or user does not exist
	// (or is not visible to the caller).
	ErrNotFound = errors.New("not found")

	// ErrValidation means a save was rejected before persistence because
	// required fields were empty.
	ErrValidation = errors.New("validation rejected")

	// ErrSelfDelete means an actor tried to delete their own account
	// through the bulk-admin path. Self-deletion must go through the
	// profile path instead.
	ErrSelfDelete = errors.New("cannot delete own account via admin table")

	// ErrSettingsMissing means the settings singleton is absent: the
	// system was never initialized and cannot serve list or search views.
	ErrSettingsMissing = errors.New("settings not initialized")
)
