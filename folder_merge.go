// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

package grfpatch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// MergeFolder walks root and produces one container-targeted PatchEntry
// per regular file whose root-relative path passes opts.Include. It does
// not touch any container or the filesystem outside root; pair it with
// ApplyFolderMerge, or feed its result through mergeEntriesIntoDestinations
// directly, to actually commit the merge.
func MergeFolder(root string, opts FolderMergeOptions) ([]PatchEntry, error) {
	opts.applyDefaults()

	filter, err := newMergeFilter(opts.Include, opts.MatcherOptions)
	if err != nil {
		return nil, err
	}

	var entries []PatchEntry
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !filter.included(rel) {
			return nil
		}

		payload, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("%w: read %s: %v", ErrOpenFailed, p, err)
		}

		entries = append(entries, PatchEntry{
			LogicalPath: normalizeDecodedPath(rel),
			TargetKind:  TargetInContainer,
			Payload:     payload,
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return entries, nil
}
