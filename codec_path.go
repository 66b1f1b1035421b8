// SPDX-License-Identifier: MIT
// Copyright (c) 2026 patchkit
// Source: github.com/patchkit/grfpatch

package grfpatch

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
)

// anchorRoot is prepended to any logical path that arrived absolute.
const anchorRoot = "data"

// decodeLegacyPath decodes raw path bytes into a Unicode string, trying
// codepage 949 (Korean, via EUC-KR), then codepage 1252 (Western
// European), then UTF-8, in that order; the first strict, error-free
// decode wins. If none succeed, every byte is reinterpreted directly as a
// Unicode code point, which always succeeds.
func decodeLegacyPath(raw []byte) string {
	if s, ok := decodeStrict(korean.EUCKR.NewDecoder(), raw); ok {
		return s
	}
	if s, ok := decodeStrict(charmap.Windows1252.NewDecoder(), raw); ok {
		return s
	}
	if utf8.Valid(raw) {
		return string(raw)
	}
	return decodeBytewise(raw)
}

// decodeStrict decodes raw with dec and rejects the result if decoding
// failed outright or produced the Unicode replacement character, which
// this codepage chain treats as "not really this codepage" rather than a
// legitimate character.
func decodeStrict(dec *encoding.Decoder, raw []byte) (string, bool) {
	out, err := dec.Bytes(raw)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(out) || strings.ContainsRune(string(out), utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

// decodeBytewise reinterprets each input byte as its own Unicode code
// point (Latin-1 identity mapping). Always succeeds.
func decodeBytewise(raw []byte) string {
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}

// trimTrailingNuls strips trailing NUL bytes, since fixed-width path
// fields in both archive formats are sometimes NUL-padded or
// NUL-terminated rather than exactly sized.
func trimTrailingNuls(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return b
}

// NormalizePatchPath decodes legacy path bytes and normalizes the result:
// backslashes become slashes, "." segments are dropped, ".." segments pop
// the preceding segment, and a path that arrived absolute is re-anchored
// under anchorRoot. Returns "" for a path that normalizes to nothing.
func NormalizePatchPath(raw []byte) string {
	decoded := decodeLegacyPath(trimTrailingNuls(raw))
	return normalizeDecodedPath(decoded)
}

func normalizeDecodedPath(decoded string) string {
	s := strings.ReplaceAll(decoded, `\`, "/")
	wasAbsolute := strings.HasPrefix(s, "/")

	segments := strings.Split(s, "/")
	stack := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, seg)
		}
	}

	joined := strings.Join(stack, "/")
	if joined == "" {
		return ""
	}
	if wasAbsolute {
		return anchorRoot + "/" + joined
	}
	return joined
}
