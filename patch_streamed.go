// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

package grfpatch

import (
	"bytes"
	"encoding/binary"
)

// parseStreamedPatch tries the streamed sub-format: one forward zlib
// stream of concatenated records, each shaped
// pathLen(4) dataLen(4) [flags(4)] path(pathLen) data(dataLen).
// The optional flags field is present only when the remaining buffer can
// also fit both variable-length strings after it; otherwise it's treated
// as absent, per the streamed record layout.
func parseStreamedPatch(data []byte, bodyOff int) ([]PatchEntry, bool) {
	idx := findZlibHeaderForward(data, bodyOff)
	if idx < 0 {
		return nil, false
	}

	inflated, err := inflateZlib(bytes.NewReader(data[idx:]))
	if err != nil {
		return nil, false
	}

	entries := decodeStreamedRecords(inflated)
	return entries, len(entries) > 0
}

func decodeStreamedRecords(buf []byte) []PatchEntry {
	var entries []PatchEntry
	off := 0

	for off+8 <= len(buf) {
		pathLen := int(int32(binary.LittleEndian.Uint32(buf[off : off+4])))
		dataLen := int(int32(binary.LittleEndian.Uint32(buf[off+4 : off+8])))
		if pathLen < 0 || dataLen <= 0 {
			break
		}

		rec := off + 8
		hasFlags := rec+4+pathLen+dataLen <= len(buf)
		if hasFlags {
			rec += 4
		}
		if rec+pathLen+dataLen > len(buf) {
			break
		}

		pathBytes := buf[rec : rec+pathLen]
		rec += pathLen
		payload := buf[rec : rec+dataLen]
		rec += dataLen

		if logicalPath := NormalizePatchPath(pathBytes); logicalPath != "" {
			entries = append(entries, PatchEntry{
				LogicalPath: logicalPath,
				TargetKind:  TargetInContainer,
				Payload:     append([]byte(nil), payload...),
			})
		}

		off = rec
	}

	return entries
}
