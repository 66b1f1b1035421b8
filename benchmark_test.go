package grfpatch

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zlib"
)

func BenchmarkContainerSave(b *testing.B) {
	dir := b.TempDir()
	path := filepath.Join(dir, "bench.grf")

	c := NewContainer()
	for i := 0; i < 256; i++ {
		c.InsertOrReplace(fmt.Sprintf("data/entry-%d.bin", i), make([]byte, 4096))
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := c.Save(path, false); err != nil {
			b.Fatalf("Save: %v", err)
		}
	}
}

func BenchmarkLoadContainer(b *testing.B) {
	dir := b.TempDir()
	path := filepath.Join(dir, "bench.grf")

	c := NewContainer()
	for i := 0; i < 256; i++ {
		c.InsertOrReplace(fmt.Sprintf("data/entry-%d.bin", i), make([]byte, 4096))
	}
	if err := c.Save(path, false); err != nil {
		b.Fatalf("Save: %v", err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := LoadContainer(path); err != nil {
			b.Fatalf("LoadContainer: %v", err)
		}
	}
}

func BenchmarkParsePatchArchiveStreamed(b *testing.B) {
	var body bytes.Buffer
	for i := 0; i < 128; i++ {
		path := []byte(fmt.Sprintf("data/entry-%d.bin", i))
		payload := []byte("payload-bytes-for-benchmarking")
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(path)))
		body.Write(lenBuf[:])
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
		body.Write(lenBuf[:])
		var flags [4]byte
		body.Write(flags[:])
		body.Write(path)
		body.Write(payload)
	}

	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	if _, err := w.Write(body.Bytes()); err != nil {
		b.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		b.Fatalf("close: %v", err)
	}

	var data bytes.Buffer
	data.WriteString(patchMagic)
	var metaLen [4]byte
	data.Write(metaLen[:])
	data.Write(compressed.Bytes())

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ParsePatchArchive(data.Bytes(), ParseOptions{}); err != nil {
			b.Fatalf("ParsePatchArchive: %v", err)
		}
	}
}
