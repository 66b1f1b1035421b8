// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

package grfpatch

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf16"
)

// GRF2 container binary layout: a 4-byte magic, a fixed header, and a
// sequence of path-prefixed, length-prefixed entry records.
const (
	containerMagic      = "GRF2"
	containerHeaderSize = 16
)

// containerEntry is one stored payload, keyed externally by its
// case-folded path.
type containerEntry struct {
	originalPath string
	data         []byte
}

// Container is an in-memory, insert-or-replace keyed payload store backed
// by the GRF2 binary format. Lookups and replacement are case-insensitive
// by path; the original casing of the most recent insert or replace is
// what gets persisted.
type Container struct {
	entries map[string]*containerEntry
	order   []string
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{entries: make(map[string]*containerEntry)}
}

// LoadContainer reads and parses a GRF2 container file.
func LoadContainer(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open container %s: %v", ErrOpenFailed, path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read container %s: %v", ErrOpenFailed, path, err)
	}

	return parseContainer(data)
}

// parseContainer decodes an in-memory GRF2 image.
func parseContainer(data []byte) (*Container, error) {
	if len(data) < containerHeaderSize {
		return nil, fmt.Errorf("%w: header shorter than %d bytes", ErrCorruptContainer, containerHeaderSize)
	}
	if string(data[0:4]) != containerMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptContainer)
	}
	count := binary.LittleEndian.Uint32(data[12:16])

	c := NewContainer()
	off := containerHeaderSize
	for i := uint32(0); i < count; i++ {
		if off+4 > len(data) {
			return nil, fmt.Errorf("%w: entry %d: truncated path length", ErrCorruptContainer, i)
		}
		pathUnits := int(binary.LittleEndian.Uint32(data[off : off+4]))
		off += 4
		if pathUnits < 0 {
			return nil, fmt.Errorf("%w: entry %d: negative path length", ErrCorruptContainer, i)
		}
		pathBytes := pathUnits * 2
		if off+pathBytes > len(data) {
			return nil, fmt.Errorf("%w: entry %d: truncated path", ErrCorruptContainer, i)
		}
		logicalPath, err := decodeUTF16LE(data[off : off+pathBytes])
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: path: %v", ErrCorruptContainer, i, err)
		}
		off += pathBytes

		if off+4 > len(data) {
			return nil, fmt.Errorf("%w: entry %d: truncated data length", ErrCorruptContainer, i)
		}
		dataLen := int(binary.LittleEndian.Uint32(data[off : off+4]))
		off += 4
		if dataLen < 0 || off+dataLen > len(data) {
			return nil, fmt.Errorf("%w: entry %d: truncated payload", ErrCorruptContainer, i)
		}
		payload := make([]byte, dataLen)
		copy(payload, data[off:off+dataLen])
		off += dataLen

		c.insertOrReplaceRaw(logicalPath, payload)
	}

	return c, nil
}

func decodeUTF16LE(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("odd byte length %d", len(b))
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return string(utf16.Decode(units)), nil
}

func containerKey(path string) string {
	return strings.ToLower(path)
}

func (c *Container) insertOrReplaceRaw(path string, payload []byte) {
	key := containerKey(path)
	if e, ok := c.entries[key]; ok {
		e.originalPath = path
		e.data = payload
		return
	}
	c.entries[key] = &containerEntry{originalPath: path, data: payload}
	c.order = append(c.order, key)
}

// InsertOrReplace inserts a new entry or replaces an existing one under
// the same case-folded key, adopting path's casing going forward.
func (c *Container) InsertOrReplace(path string, payload []byte) {
	c.insertOrReplaceRaw(path, payload)
}

// Lookup returns an entry's payload by case-insensitive path match.
func (c *Container) Lookup(path string) ([]byte, bool) {
	e, ok := c.entries[containerKey(path)]
	if !ok {
		return nil, false
	}
	return e.data, true
}

// Len reports how many entries the container holds.
func (c *Container) Len() int {
	return len(c.order)
}

// Entries returns every entry in stable load/insertion order.
func (c *Container) Entries() []ContainerEntry {
	out := make([]ContainerEntry, 0, len(c.order))
	for _, key := range c.order {
		e := c.entries[key]
		out = append(out, ContainerEntry{Path: e.originalPath, Data: e.data})
	}
	return out
}

// serialize renders the container as a GRF2 binary image.
func (c *Container) serialize() []byte {
	var buf bytes.Buffer

	var header [containerHeaderSize]byte
	copy(header[0:4], containerMagic)
	binary.LittleEndian.PutUint32(header[12:16], uint32(len(c.order)))
	buf.Write(header[:])

	var lenBuf [4]byte
	for _, key := range c.order {
		e := c.entries[key]
		units := utf16.Encode([]rune(e.originalPath))

		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(units)))
		buf.Write(lenBuf[:])
		for _, u := range units {
			var unitBuf [2]byte
			binary.LittleEndian.PutUint16(unitBuf[:], u)
			buf.Write(unitBuf[:])
		}

		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(e.data)))
		buf.Write(lenBuf[:])
		buf.Write(e.data)
	}

	return buf.Bytes()
}

// Save persists the container to path. With inPlace false (the default),
// the image is written to a sibling temp file and atomically renamed over
// path; the original file's bytes are untouched until the rename
// succeeds. With inPlace true, path is overwritten directly.
func (c *Container) Save(path string, inPlace bool) error {
	blob := c.serialize()
	if inPlace {
		return writeFileDirect(path, blob)
	}
	return writeFileAtomic(path, blob)
}

func writeFileDirect(path string, blob []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("%w: open %s for write: %v", ErrWriteFailed, path, err)
	}
	if _, err := f.Write(blob); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write %s: %v", ErrWriteFailed, path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: sync %s: %v", ErrWriteFailed, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrWriteFailed, path, err)
	}
	return nil
}

func writeFileAtomic(path string, blob []byte) error {
	tmp := path + ".tmp"
	if err := writeFileDirect(tmp, blob); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: replace %s: %v", ErrWriteFailed, path, err)
	}
	return nil
}
