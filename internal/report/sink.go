// Package report holds the line sinks a run writes into: an in-memory Buffer
// that becomes the report file, a Console that echoes each line as it is
// produced, and Tee to drive both at once.
package report

import "strings"

// Sink receives report lines in order.
type Sink interface {
	WriteLine(line string)
}

// Buffer is an append-only, ordered list of report lines.
type Buffer struct {
	lines []string
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) WriteLine(line string) {
	b.lines = append(b.lines, line)
}

// Lines returns a copy of the collected lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

func (b *Buffer) Len() int {
	return len(b.lines)
}

// String joins the lines with "\n". There is no trailing newline.
func (b *Buffer) String() string {
	return strings.Join(b.lines, "\n")
}

type tee []Sink

func (t tee) WriteLine(line string) {
	for _, s := range t {
		s.WriteLine(line)
	}
}

// Tee fans every line out to all given sinks, in argument order.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type discard struct{}

func (discard) WriteLine(string) {}

// Discard drops every line.
var Discard Sink = discard{}
