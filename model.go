// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

package grfpatch

import "github.com/woozymasta/pathrules"

// TargetKind identifies where a decoded patch entry's payload belongs.
type TargetKind uint8

// Patch entry target kinds.
const (
	// TargetInContainer means the entry is inserted into a container archive.
	TargetInContainer TargetKind = iota
	// TargetOnFilesystem means the entry is written directly to disk.
	TargetOnFilesystem
)

// PatchEntry is one decoded, path-normalized record produced by the patch
// archive parser or by a folder-merge walk.
type PatchEntry struct {
	// LogicalPath is the normalized, anchored destination path.
	LogicalPath string
	// TargetKind selects the container or filesystem delivery branch.
	TargetKind TargetKind
	// ContainerOverride names a specific container file for this entry;
	// empty means the caller-supplied default container.
	ContainerOverride string
	// Payload is the entry's decompressed content.
	Payload []byte
}

// PatchOptions configures ApplyPatch and ApplyFolderMerge.
type PatchOptions struct {
	// InPlace selects direct in-place container overwrite over the default
	// temp-file-then-rename atomic save.
	InPlace bool
	// CreateIfMissing allows a target container that fails to load
	// (missing, unreadable or corrupt) to be started empty instead of
	// aborting with ErrMissingContainer.
	CreateIfMissing bool
}

// ParseOptions configures ParsePatchArchive.
type ParseOptions struct {
	// VerifyCRC enables the indexed sub-format's per-record CRC32 check.
	// Off by default, matching the literal parsing algorithm.
	VerifyCRC bool
}

// ContainerSaveOptions configures SaveContainerWithBackup.
type ContainerSaveOptions struct {
	// InPlace selects direct in-place overwrite over temp-then-rename.
	InPlace bool
	// BackupKeep controls how many backup generations survive a
	// successful save. 0 removes the backup on success; N keeps
	// "<path>.bak" plus "<path>.bak.1".."<path>.bak.N-1".
	BackupKeep int
}

// FolderMergeOptions configures MergeFolder's filesystem walk.
type FolderMergeOptions struct {
	// Include selects which relative paths under the walked root
	// participate in the merge. An empty rule set includes everything.
	Include []pathrules.Rule
	// MatcherOptions controls Include rule matching.
	MatcherOptions pathrules.MatcherOptions
}

// applyDefaults fills zero-valued container save options with defaults.
func (opts *ContainerSaveOptions) applyDefaults() {
	if opts.BackupKeep < 0 {
		opts.BackupKeep = 0
	}
}

// applyDefaults fills zero-valued folder merge options with defaults.
func (opts *FolderMergeOptions) applyDefaults() {
	if opts.MatcherOptions == (pathrules.MatcherOptions{}) {
		opts.MatcherOptions = pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionInclude,
		}
	}

	if opts.MatcherOptions.DefaultAction == pathrules.ActionUnknown {
		opts.MatcherOptions.DefaultAction = pathrules.ActionInclude
	}
}

// ContainerEntry describes one entry as observed through Container.Entries.
type ContainerEntry struct {
	// Path is the entry's original-cased logical path.
	Path string
	// Data is the entry's stored payload.
	Data []byte
}
