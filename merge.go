// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

package grfpatch

import (
	"fmt"
	"os"
	"path/filepath"
)

// ApplyPatch reads and parses the patch archive at patchPath, merges its
// entries into defaultContainer (or whichever container each entry
// overrides) and onto the filesystem, and, on success, deletes the patch
// archive. A patch archive with no usable entries fails to parse at all
// (ParsePatchArchive returns ErrNoEntries), so that case surfaces here as
// an error, not as a false, nil result; the false, nil empty-entries
// outcome is only reachable through ApplyFolderMerge.
func ApplyPatch(patchPath, defaultContainer string, opts PatchOptions, observer Observer) (bool, error) {
	observer = observerOrNop(observer)

	observer.Status(fmt.Sprintf("reading patch archive %s", patchPath))
	data, err := os.ReadFile(patchPath)
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrOpenFailed, err)
		observer.Error(wrapped.Error())
		return false, wrapped
	}

	entries, err := ParsePatchArchive(data, ParseOptions{})
	if err != nil {
		observer.Error(err.Error())
		return false, err
	}

	ok, err := mergeEntriesIntoDestinations(entries, defaultContainer, opts, observer)
	if err != nil || !ok {
		return ok, err
	}

	if err := os.Remove(patchPath); err != nil {
		wrapped := fmt.Errorf("%w: remove patch archive %s: %v", ErrWriteFailed, patchPath, err)
		observer.Error(wrapped.Error())
		return false, wrapped
	}

	observer.Ready()
	return true, nil
}

// ApplyFolderMerge walks root and merges every included file into
// defaultContainer, sharing the same bucket/apply/save pipeline ApplyPatch
// uses. MergeFolder only produces container-targeted entries without a
// container override, so nothing is written onto the filesystem besides
// defaultContainer. Unlike ApplyPatch it never deletes anything under root.
func ApplyFolderMerge(root, defaultContainer string, folderOpts FolderMergeOptions, opts PatchOptions, observer Observer) (bool, error) {
	observer = observerOrNop(observer)

	observer.Status(fmt.Sprintf("walking folder %s", root))
	entries, err := MergeFolder(root, folderOpts)
	if err != nil {
		observer.Error(err.Error())
		return false, err
	}

	ok, err := mergeEntriesIntoDestinations(entries, defaultContainer, opts, observer)
	if err != nil || !ok {
		return ok, err
	}

	observer.Ready()
	return true, nil
}

// mergeEntriesIntoDestinations partitions entries into filesystem writes
// and container-keyed buckets, applies filesystem writes first, then
// loads, mutates, and saves each container bucket in turn. Reports
// false, nil for an empty entry set.
func mergeEntriesIntoDestinations(entries []PatchEntry, defaultContainer string, opts PatchOptions, observer Observer) (bool, error) {
	if len(entries) == 0 {
		return false, nil
	}

	fsEntries, buckets := partitionEntries(entries, defaultContainer)
	total := len(entries)
	done := 0

	destDir := filepath.Dir(defaultContainer)
	for _, e := range fsEntries {
		outPath := filepath.Join(destDir, filepath.FromSlash(e.LogicalPath))
		if err := writeFilesystemEntry(outPath, e.Payload); err != nil {
			observer.Error(err.Error())
			return false, err
		}
		done++
		observer.Progress(done, total)
	}

	for containerPath, group := range buckets {
		c, err := LoadContainer(containerPath)
		if err != nil {
			if !opts.CreateIfMissing {
				wrapped := fmt.Errorf("%w: %s", ErrMissingContainer, containerPath)
				observer.Error(wrapped.Error())
				return false, wrapped
			}
			c = NewContainer()
		}

		for _, e := range group {
			c.InsertOrReplace(e.LogicalPath, e.Payload)
			done++
			observer.Progress(done, total)
		}

		observer.Status(fmt.Sprintf("saving container %s", containerPath))
		if err := c.Save(containerPath, opts.InPlace); err != nil {
			observer.Error(err.Error())
			return false, err
		}
	}

	return true, nil
}

// partitionEntries splits entries into filesystem-targeted ones and
// container-targeted ones grouped by their destination container path.
func partitionEntries(entries []PatchEntry, defaultContainer string) ([]PatchEntry, map[string][]PatchEntry) {
	var fsEntries []PatchEntry
	buckets := make(map[string][]PatchEntry)

	for _, e := range entries {
		if e.TargetKind == TargetOnFilesystem {
			fsEntries = append(fsEntries, e)
			continue
		}
		key := e.ContainerOverride
		if key == "" {
			key = defaultContainer
		}
		buckets[key] = append(buckets[key], e)
	}

	return fsEntries, buckets
}

func writeFilesystemEntry(outPath string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return fmt.Errorf("%w: mkdir for %s: %v", ErrWriteFailed, outPath, err)
	}
	if err := os.WriteFile(outPath, payload, 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrWriteFailed, outPath, err)
	}
	return nil
}
