package labels

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultLocale(t *testing.T) {
	l, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "PROJECT STRUCTURE AND CODE CONTENT", l.ReportTitle())
	assert.Equal(t, "FILE CONTENT (3 lines):", l.ContentHeader(3))
	assert.Equal(t, "ERROR: The file 'x.txt' does not exist.", l.MissingFile("x.txt"))
	assert.Equal(t, "ERROR READING FILE: boom", l.ReadError(errors.New("boom")))
}

func TestLoad_Norwegian(t *testing.T) {
	l, err := Load("NB")
	require.NoError(t, err)

	ts := time.Date(2026, 10, 16, 9, 5, 3, 0, time.Local)
	assert.Equal(t, "Generert: 16.10.2026 kl. 09:05:03", l.Generated(ts))
	assert.Equal(t, "(BINÆR FIL)", l.BinaryMarker())
	assert.Equal(t, "SLUTT PÅ FIL", l.EndOfFile())
}

func TestLoad_UnknownLocale(t *testing.T) {
	_, err := Load("xx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "en, nb")
}

func TestParseCatalog_MissingKeys(t *testing.T) {
	_, err := ParseCatalog([]byte("de:\n  report_title: \"X\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generated")
}

func TestParseCatalog_Malformed(t *testing.T) {
	_, err := ParseCatalog([]byte("en: [unclosed"))
	assert.Error(t, err)
}
