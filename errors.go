// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

package grfpatch

import "errors"

// Sentinel error kinds. Wrap with fmt.Errorf("%w: ...", ErrX) at the point
// of detection and compare with errors.Is at the call site.
var (
	// ErrOpenFailed means a file could not be opened or read at all.
	ErrOpenFailed = errors.New("grfpatch: open failed")
	// ErrCorruptContainer means a container file's bytes do not match the GRF2 layout.
	ErrCorruptContainer = errors.New("grfpatch: corrupt container")
	// ErrMissingContainer means a target container could not be loaded (absent, unreadable or corrupt) and CreateIfMissing is false.
	ErrMissingContainer = errors.New("grfpatch: missing container")
	// ErrCorruptPatch means a patch archive's header does not match the ASSF layout.
	ErrCorruptPatch = errors.New("grfpatch: corrupt patch archive")
	// ErrNoEntries means a patch archive parsed without error but yielded no usable entries.
	ErrNoEntries = errors.New("grfpatch: no usable entries")
	// ErrCorruptStream means a zlib stream failed to inflate to completion.
	ErrCorruptStream = errors.New("grfpatch: corrupt zlib stream")
	// ErrWriteFailed means a filesystem or container write could not be completed.
	ErrWriteFailed = errors.New("grfpatch: write failed")
	// ErrInvalidMergeFilter means a folder-merge include rule set failed to compile.
	ErrInvalidMergeFilter = errors.New("grfpatch: invalid merge filter")
)
