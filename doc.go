// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

// Package grfpatch reads GRF2 container archives, parses ASSF patch
// archives in either of their two on-disk sub-formats, and merges decoded
// patch entries into containers or onto the filesystem.
//
// A container is an insert-or-replace keyed blob store persisted with a
// small binary header. A patch archive is either a single forward zlib
// stream of concatenated records ("streamed") or a set of independently
// compressed payload blobs addressed by a trailing zlib-compressed index
// ("indexed"); ParsePatchArchive detects which one it is looking at.
//
// ApplyPatch ties the two together: it parses a patch archive, partitions
// its entries between filesystem targets and container targets, and
// commits each container bucket with an insert-or-replace loop followed
// by a save that is atomic unless PatchOptions.InPlace is set. Callers
// observe progress through the Observer interface; a nil Observer is
// accepted and replaced by a no-op one.
package grfpatch
