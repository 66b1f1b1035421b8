// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

package grfpatch

import (
	"encoding/binary"
	"fmt"
)

const patchMagic = "ASSF"

// patchHeader is the fixed-shape ASSF header common to both sub-formats:
// a 4-byte magic followed by a length-prefixed metadata blob. Everything
// after bodyOff is sub-format-specific.
type patchHeader struct {
	bodyOff int
}

func parsePatchHeader(data []byte) (patchHeader, error) {
	const fixedSize = 8
	if len(data) < fixedSize {
		return patchHeader{}, fmt.Errorf("%w: header shorter than %d bytes", ErrCorruptPatch, fixedSize)
	}
	if string(data[0:4]) != patchMagic {
		return patchHeader{}, fmt.Errorf("%w: bad magic", ErrCorruptPatch)
	}
	metaLen := int(binary.LittleEndian.Uint32(data[4:8]))
	if metaLen < 0 || fixedSize+metaLen > len(data) {
		return patchHeader{}, fmt.Errorf("%w: truncated metadata", ErrCorruptPatch)
	}
	return patchHeader{bodyOff: fixedSize + metaLen}, nil
}
