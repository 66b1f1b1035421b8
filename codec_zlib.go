// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

package grfpatch

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// inflateChunkSize bounds how much of an inflated stream is buffered per
// Read call; the total decompressed size is not known in advance.
const inflateChunkSize = 64 * 1024

// isZlibHeader reports whether b0, b1 form a valid RFC 1950 zlib header:
// a CM/CINFO byte of 0x78 (deflate, 32K window) whose 16-bit big-endian
// value is a multiple of 31, with a known FLEVEL/FCHECK second byte.
func isZlibHeader(b0, b1 byte) bool {
	if b0 != 0x78 {
		return false
	}
	if (uint16(b0)<<8|uint16(b1))%31 != 0 {
		return false
	}
	switch b1 {
	case 0x01, 0x5e, 0x9c, 0xda:
		return true
	default:
		return false
	}
}

// findZlibHeaderForward returns the index of the first valid zlib header
// in data at or after start, or -1 if none is found.
func findZlibHeaderForward(data []byte, start int) int {
	if start < 0 {
		start = 0
	}
	for i := start; i+1 < len(data); i++ {
		if isZlibHeader(data[i], data[i+1]) {
			return i
		}
	}
	return -1
}

// findZlibHeaderBackward returns the index of the last valid zlib header
// in data at or after start, or -1 if none is found.
func findZlibHeaderBackward(data []byte, start int) int {
	for i := len(data) - 2; i >= start; i-- {
		if isZlibHeader(data[i], data[i+1]) {
			return i
		}
	}
	return -1
}

// inflateZlib decompresses a zlib stream starting at the beginning of r,
// growing the output incrementally in fixed-size chunks since the
// decompressed length is not known ahead of time. Any failure to reach
// the stream's end cleanly is reported as ErrCorruptStream.
func inflateZlib(r io.Reader) ([]byte, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open zlib stream: %v", ErrCorruptStream, err)
	}
	defer func() { _ = zr.Close() }()

	var out bytes.Buffer
	chunk := make([]byte, inflateChunkSize)
	for {
		n, rerr := zr.Read(chunk)
		if n > 0 {
			out.Write(chunk[:n])
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("%w: inflate: %v", ErrCorruptStream, rerr)
		}
	}

	return out.Bytes(), nil
}
