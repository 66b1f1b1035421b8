// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

package grfpatch

// Observer receives status, progress, error, and completion events from
// ApplyPatch and ApplyFolderMerge. Error and Ready are both terminal: at
// most one of them fires per call. A nil Observer is tolerated everywhere
// one is accepted.
type Observer interface {
	// Status reports a human-readable progress narration.
	Status(message string)
	// Progress reports completed-vs-total entry counts.
	Progress(done, total int)
	// Error reports a terminal failure; no further calls follow.
	Error(message string)
	// Ready reports terminal success; no further calls follow.
	Ready()
}

type nopObserver struct{}

func (nopObserver) Status(string)     {}
func (nopObserver) Progress(int, int) {}
func (nopObserver) Error(string)      {}
func (nopObserver) Ready()            {}

// observerOrNop returns o, or a no-op Observer when o is nil.
func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
