// SPDX-License-Identifier: MIT

// Package qerr holds the error categories shared by every qdna package.
//
// Packages declare their own sentinels ("topology: unknown model", ...) and
// wrap one of the categories below with %w, so callers can branch either on
// the precise sentinel or on the category:
//
//	if errors.Is(err, qerr.ErrConfiguration) { /* fix the inputs */ }
//
// Configuration errors are raised eagerly, before any matrix or integration
// work. Numeric guard errors are raised before integration starts. Neither
// category is transient; retry layers treat both as permanent.
package qerr

import "errors"

var (
	// ErrConfiguration marks invalid model selection or inputs: unknown
	// topology/particle/source/unit, conflicting bath models, unresolved
	// parameter keys, strand-count mismatch.
	ErrConfiguration = errors.New("qdna: configuration error")

	// ErrNumericGuard marks a numerically unsound request detected before
	// integration, such as an under-resolved time grid.
	ErrNumericGuard = errors.New("qdna: numeric guard")
)

// IsPermanent reports whether err belongs to a category that must never be
// retried.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrNumericGuard)
}
