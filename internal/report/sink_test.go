package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_JoinsWithoutTrailingNewline(t *testing.T) {
	b := NewBuffer()
	b.WriteLine("first")
	b.WriteLine("")
	b.WriteLine("last")

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, "first\n\nlast", b.String())
}

func TestBuffer_LinesReturnsCopy(t *testing.T) {
	b := NewBuffer()
	b.WriteLine("a")

	lines := b.Lines()
	lines[0] = "changed"

	assert.Equal(t, []string{"a"}, b.Lines())
}

func TestTee_FansOutInOrder(t *testing.T) {
	var out bytes.Buffer
	buf := NewBuffer()
	sink := Tee(buf, NewConsole(&out), Discard)

	sink.WriteLine("📁 src/")
	sink.WriteLine(Rule("="))
	sink.WriteLine("")

	assert.Equal(t, []string{"📁 src/", Rule("="), ""}, buf.Lines())
	// A bytes.Buffer is never a terminal, so the echo is uncoloured.
	assert.Equal(t, buf.String()+"\n", out.String())
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "", Indent(0))
	assert.Equal(t, "│   │   ", Indent(2))
	assert.Len(t, []rune(Rule("-")), RuleWidth)
}

func TestIsTerminal_NonFileWriter(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestConsole_StylesByEntryPrefix(t *testing.T) {
	c := NewConsole(&bytes.Buffer{})
	c.colorize = true

	assert.Same(t, c.folder, c.style("│   📁 cmd/"))
	assert.Same(t, c.file, c.style("│   │   📄 main.go"))
	assert.Same(t, c.file, c.style("📄 package.json"))
	assert.Same(t, c.rule, c.style(Rule("=")))
	assert.Nil(t, c.style("│   │      3 │ // 📄 marks a file"))
	assert.Nil(t, c.style("│   ├── FILE CONTENT (3 lines):"))
	assert.Nil(t, c.style("ANALYSIS OF: 📁 dir"))
}
