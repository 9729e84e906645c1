// SPDX-License-Identifier: MIT

// Package basis indexes tight-binding sites and electron-hole pairs.
//
// Every conversion is a total bijection over a fixed (strands, sites)
// shape; the only error paths are out-of-range lookups and malformed labels.
// The package also carries the site↔eigenbasis changes (Change,
// GlobalToLocal, LocalToGlobal) used by the dissipator and the analyses.
package basis
