// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

package grfpatch

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
)

// parseIndexedPatch tries the indexed sub-format: payload blobs scattered
// through the file, addressed by a trailing zlib-compressed index of
// tag + NUL-terminated-path + offset/compLen/decompLen/crc records. The
// index is the last valid zlib stream in the file; a leading tag byte of
// 0 or 0xFF terminates the index before its declared end.
func parseIndexedPatch(data []byte, bodyOff int, verifyCRC bool) ([]PatchEntry, bool) {
	idx := findZlibHeaderBackward(data, bodyOff)
	if idx < 0 {
		return nil, false
	}

	indexBlob, err := inflateZlib(bytes.NewReader(data[idx:]))
	if err != nil {
		return nil, false
	}

	entries := decodeIndexedRecords(data, indexBlob, verifyCRC)
	return entries, len(entries) > 0
}

func decodeIndexedRecords(fileData, indexBlob []byte, verifyCRC bool) []PatchEntry {
	var entries []PatchEntry
	off := 0

	for off < len(indexBlob) {
		tag := indexBlob[off]
		if tag == 0 || tag == 0xFF {
			break
		}
		off++

		nulAt := bytes.IndexByte(indexBlob[off:], 0)
		if nulAt < 0 {
			break
		}
		pathBytes := indexBlob[off : off+nulAt]
		off += nulAt + 1

		const recordSize = 16
		if off+recordSize > len(indexBlob) {
			break
		}
		offset := binary.LittleEndian.Uint32(indexBlob[off : off+4])
		compLen := int32(binary.LittleEndian.Uint32(indexBlob[off+4 : off+8]))
		decompLen := int32(binary.LittleEndian.Uint32(indexBlob[off+8 : off+12]))
		crc := binary.LittleEndian.Uint32(indexBlob[off+12 : off+16])
		off += recordSize

		if compLen <= 0 {
			break
		}
		start := int64(offset)
		end := start + int64(compLen)
		if end > int64(len(fileData)) {
			break
		}

		payload, err := inflateZlib(bytes.NewReader(fileData[start:end]))
		if err != nil || int32(len(payload)) != decompLen {
			break
		}
		if verifyCRC && crc32.ChecksumIEEE(payload) != crc {
			break
		}

		if logicalPath := NormalizePatchPath(pathBytes); logicalPath != "" {
			entries = append(entries, PatchEntry{
				LogicalPath: logicalPath,
				TargetKind:  TargetInContainer,
				Payload:     payload,
			})
		}
	}

	return entries
}
