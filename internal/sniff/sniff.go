// Package sniff classifies files as text or binary by trying to decode their
// first kilobyte as UTF-8.
package sniff

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// Window is the number of leading bytes inspected.
const Window = 1024

// IsBinary reports whether the first Window bytes of the file at path fail to
// decode as UTF-8. Errors opening or reading the file are returned as-is.
func IsBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// Read a few bytes past the window so a file of exactly Window bytes is
	// not mistaken for one cut at the window edge.
	buf := make([]byte, Window+utf8.UTFMax-1)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return IsBinaryBytes(buf[:n]), nil
}

// IsBinaryBytes applies the same rule to an in-memory prefix. A rune split by
// the window edge is tolerated only when b continues past the window.
func IsBinaryBytes(b []byte) bool {
	if len(b) > Window {
		return !validPrefix(b[:Window], true)
	}
	return !validPrefix(b, false)
}

// validPrefix reports whether b is valid UTF-8. When truncated is set, b was
// cut at the window edge and a multi-byte rune split by that cut is allowed.
func validPrefix(b []byte, truncated bool) bool {
	if utf8.Valid(b) {
		return true
	}
	if !truncated {
		return false
	}
	// Find where the last rune starts; at most UTFMax-1 continuation bytes.
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			tail := b[i:]
			return !utf8.FullRune(tail) && utf8.Valid(b[:i])
		}
	}
	return false
}
