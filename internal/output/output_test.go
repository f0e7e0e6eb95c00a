package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	now := time.Date(2026, 10, 16, 8, 4, 5, 0, time.Local)

	assert.Equal(t, "project_structure_20261016_080405.txt", FileName("", "project_structure", now))
	assert.Equal(t, "mine.txt", FileName("mine.txt", "project_structure", now))
}

func TestWriteReport_CreatesAndOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "report.txt")

	require.NoError(t, WriteReport(path, []byte("first\nversion")))
	require.NoError(t, WriteReport(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp or lock files are left behind")
	assert.Equal(t, "report.txt", entries[0].Name())
}

func TestWriteReport_UnwritableTarget(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteReport(filepath.Join(blocker, "report.txt"), []byte("data"))
	assert.Error(t, err)
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	lines := []string{
		"PROJECT STRUCTURE AND CODE CONTENT",
		"",
		"📁 src/",
		"│   📄 main.go",
		"│   ├── FILE CONTENT (1 lines):",
		"│   │      1 │ package main",
		"│   └── END OF FILE",
	}

	require.NoError(t, WritePDF(path, "report", lines))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))
}

func TestPDFGlyphs(t *testing.T) {
	assert.Equal(t, "|   [F] a.go", pdfGlyphs.Replace("│   📄 a.go"))
	assert.Equal(t, "+-- x", pdfGlyphs.Replace("├── x"))
}
