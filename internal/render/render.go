// Package render writes the line-numbered listing of a single file into a
// report sink.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jadenpxrk/treedump/internal/labels"
	"github.com/jadenpxrk/treedump/internal/report"
	"github.com/jadenpxrk/treedump/internal/sniff"
)

// contentStep is the extra indent of numbered lines under a standalone file.
const contentStep = "    "

// Kind says what happened to a rendered file.
type Kind int

const (
	Dumped Kind = iota
	Binary
	Missing
	Failed
)

func (k Kind) String() string {
	switch k {
	case Dumped:
		return "dumped"
	case Binary:
		return "binary"
	case Missing:
		return "missing"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Result describes one rendered file.
type Result struct {
	Kind  Kind
	Lines int
	Err   error
}

// Renderer formats file listings with a fixed vocabulary.
type Renderer struct {
	labels *labels.Labels
}

func New(l *labels.Labels) *Renderer {
	return &Renderer{labels: l}
}

// Labels returns the vocabulary the renderer writes with.
func (r *Renderer) Labels() *labels.Labels {
	return r.labels
}

// File renders a standalone file. It never fails: a missing path yields a
// single error line and read problems are written into the report.
func (r *Renderer) File(sink report.Sink, path, indent string) Result {
	if _, err := os.Stat(path); err != nil {
		sink.WriteLine(indent + r.labels.MissingFile(path))
		return Result{Kind: Missing, Err: err}
	}
	return r.Entry(sink, path, filepath.Base(path), indent, indent+contentStep)
}

// Entry sniffs path and writes either a binary marker or the file line
// followed by its numbered content.
func (r *Renderer) Entry(sink report.Sink, path, name, indent, contentIndent string) Result {
	binary, err := sniff.IsBinary(path)
	if err != nil {
		r.readError(sink, indent, err)
		return Result{Kind: Failed, Err: err}
	}
	if binary {
		sink.WriteLine(indent + report.FileMark + name + " " + r.labels.BinaryMarker())
		return Result{Kind: Binary}
	}

	sink.WriteLine(indent + report.FileMark + name)
	return r.Content(sink, path, indent, contentIndent)
}

// Content writes the header, one numbered line per source line, the footer
// and a blank separator.
func (r *Renderer) Content(sink report.Sink, path, indent, contentIndent string) Result {
	data, err := os.ReadFile(path)
	if err == nil {
		err = checkUTF8(data)
	}
	if err != nil {
		r.readError(sink, indent, err)
		return Result{Kind: Failed, Err: err}
	}

	lines := SplitLines(string(data))
	r.Lines(sink, lines, indent, contentIndent)
	return Result{Kind: Dumped, Lines: len(lines)}
}

// Lines writes an already decoded listing.
func (r *Renderer) Lines(sink report.Sink, lines []string, indent, contentIndent string) {
	sink.WriteLine(indent + report.Branch + r.labels.ContentHeader(len(lines)))
	for i, line := range lines {
		sink.WriteLine(contentIndent + NumberLine(i+1, line))
	}
	sink.WriteLine(indent + report.LastBranch + r.labels.EndOfFile())
	sink.WriteLine("")
}

// Text renders an in-memory document the way File renders one from disk.
func (r *Renderer) Text(sink report.Sink, name, text string, binary bool, indent string) Result {
	if binary {
		sink.WriteLine(indent + report.FileMark + name + " " + r.labels.BinaryMarker())
		return Result{Kind: Binary}
	}
	sink.WriteLine(indent + report.FileMark + name)
	lines := SplitLines(text)
	r.Lines(sink, lines, indent, indent+contentStep)
	return Result{Kind: Dumped, Lines: len(lines)}
}

// Failure writes the read-error entry for a document that could not be
// obtained at all.
func (r *Renderer) Failure(sink report.Sink, indent string, err error) Result {
	r.readError(sink, indent, err)
	return Result{Kind: Failed, Err: err}
}

func (r *Renderer) readError(sink report.Sink, indent string, err error) {
	sink.WriteLine(indent + report.Branch + r.labels.ReadError(err))
	sink.WriteLine("")
}

// NumberLine formats one listing entry: the 1-based number right-aligned in
// four columns, a bar, then the text.
func NumberLine(n int, text string) string {
	return fmt.Sprintf("%4d", n) + report.NumberBar + text
}

// SplitLines splits s on "\n", "\r\n" and "\r". A trailing terminator does
// not start an extra empty line.
func SplitLines(s string) []string {
	var lines []string
	for len(s) > 0 {
		i := strings.IndexAny(s, "\r\n")
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i])
		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			i++
		}
		s = s[i+1:]
	}
	return lines
}

// InvalidUTF8Error reports the first byte that does not decode.
type InvalidUTF8Error struct {
	Byte   byte
	Offset int
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("invalid UTF-8 byte 0x%02x at offset %d", e.Byte, e.Offset)
}

func checkUTF8(data []byte) error {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return &InvalidUTF8Error{Byte: data[i], Offset: i}
		}
		i += size
	}
	return nil
}
