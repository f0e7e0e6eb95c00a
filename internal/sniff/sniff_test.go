package sniff

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"empty", nil, false},
		{"ascii", []byte("package main\n"), false},
		{"multibyte", []byte("blåbær – 日本語\n"), false},
		{"invalid start byte", []byte{'a', 0xff, 'b'}, true},
		{"truncated rune at eof", []byte{'a', 0xe2, 0x94}, true},
		{"png header", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, true},
		{"nul bytes are valid utf-8", []byte{0, 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "f", tt.data)
			got, err := IsBinary(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsBinary_OnlyInspectsWindow(t *testing.T) {
	data := append(bytes.Repeat([]byte("x"), Window), 0xff, 0xfe)
	path := writeFile(t, "late.bin", data)

	got, err := IsBinary(path)
	require.NoError(t, err)
	assert.False(t, got, "invalid bytes past the window are not inspected")
}

func TestIsBinary_RuneSplitByWindow(t *testing.T) {
	// "│" is three bytes; place it so the window cuts after its first byte.
	data := append(bytes.Repeat([]byte("x"), Window-1), []byte("│ tail")...)
	path := writeFile(t, "split.txt", data)

	got, err := IsBinary(path)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIsBinary_PartialRuneAtEOFOfWindowSizedFile(t *testing.T) {
	// Exactly Window bytes, ending in the first byte of "│": nothing follows,
	// so the rune is truncated for good.
	data := append(bytes.Repeat([]byte("x"), Window-1), "│"[0])
	require.Len(t, data, Window)
	path := writeFile(t, "short.txt", data)

	got, err := IsBinary(path)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestIsBinary_InvalidInsideWindow(t *testing.T) {
	data := append(bytes.Repeat([]byte("x"), Window-2), 0xc3, 0x28, 'y', 'z')
	path := writeFile(t, "bad.txt", data)

	got, err := IsBinary(path)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestIsBinary_MissingFile(t *testing.T) {
	_, err := IsBinary(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsBinaryBytes(t *testing.T) {
	assert.False(t, IsBinaryBytes([]byte("<html></html>")))
	assert.True(t, IsBinaryBytes([]byte{0xff}))

	edge := append(bytes.Repeat([]byte("x"), Window-1), "│"...)
	assert.False(t, IsBinaryBytes(edge), "rune continues past the window")
	assert.True(t, IsBinaryBytes(edge[:Window]), "rune ends at the data")
}
