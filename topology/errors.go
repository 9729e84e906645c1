// SPDX-License-Identifier: MIT
// Package: qdna/topology
//
// errors.go - sentinel errors for the topology package.
//
// Error policy:
//   - Only package-level sentinels are exposed; callers branch with errors.Is.
//   - Every validation sentinel wraps qerr.ErrConfiguration, so a caller can
//     also branch on the category.
//   - Implementations attach context (model name, dims, offending term) with
//     %w at the failure site; sentinels are never re-declared with values.

package topology

import (
	"fmt"

	"github.com/katalvlaran/qdna/qerr"
)

// ErrUnknownModel indicates a topology name outside the named set.
var ErrUnknownModel = fmt.Errorf("topology: unknown model: %w", qerr.ErrConfiguration)

// ErrStrandMismatch indicates dims whose strand count differs from the
// fixed strand count of the named topology. Never silently corrected.
var ErrStrandMismatch = fmt.Errorf("topology: strand count mismatch: %w", qerr.ErrConfiguration)

// ErrTooFewSites indicates fewer than one site per strand.
var ErrTooFewSites = fmt.Errorf("topology: too few sites per strand: %w", qerr.ErrConfiguration)

// ErrInvalidTerm indicates a coupling term with an unknown tag, a site
// outside dims, or an on-site term whose target differs from its source.
var ErrInvalidTerm = fmt.Errorf("topology: invalid coupling term: %w", qerr.ErrConfiguration)

// topologyErrorf prefixes err with the method tag and a formatted detail.
func topologyErrorf(method, format string, args ...any) error {
	return fmt.Errorf("%s: "+format, append([]any{method}, args...)...)
}
