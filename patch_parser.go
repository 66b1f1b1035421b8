// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

package grfpatch

// ParsePatchArchive decodes an ASSF patch archive's entries. The streamed
// sub-format is tried first; if it yields nothing, the indexed sub-format
// is tried next. Neither sub-format matching is a definitive ErrCorruptPatch
// result — the archive is only reported corrupt by its header; a header
// that parses but whose body matches neither sub-format is ErrNoEntries.
func ParsePatchArchive(data []byte, opts ParseOptions) ([]PatchEntry, error) {
	header, err := parsePatchHeader(data)
	if err != nil {
		return nil, err
	}

	if entries, ok := parseStreamedPatch(data, header.bodyOff); ok {
		return entries, nil
	}

	if entries, ok := parseIndexedPatch(data, header.bodyOff, opts.VerifyCRC); ok {
		return entries, nil
	}

	return nil, ErrNoEntries
}
