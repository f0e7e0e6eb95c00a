package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Console echoes every line to a writer as soon as it arrives. When the
// writer is a terminal, folder, file and rule lines are coloured; otherwise
// the echoed text is byte-for-byte the report text.
type Console struct {
	out      io.Writer
	colorize bool

	folder *color.Color
	file   *color.Color
	rule   *color.Color
}

// NewConsole wraps w. Colour is used only when w is a terminal and colour
// has not been disabled globally (NO_COLOR).
func NewConsole(w io.Writer) *Console {
	c := &Console{
		out:      w,
		colorize: IsTerminal(w) && !color.NoColor,
		folder:   color.New(color.FgCyan, color.Bold),
		file:     color.New(color.FgGreen),
		rule:     color.New(color.FgYellow),
	}
	if c.colorize {
		c.folder.EnableColor()
		c.file.EnableColor()
		c.rule.EnableColor()
	}
	return c
}

func (c *Console) WriteLine(line string) {
	if st := c.style(line); st != nil {
		st.Fprintln(c.out, line)
		return
	}
	fmt.Fprintln(c.out, line)
}

func (c *Console) style(line string) *color.Color {
	if !c.colorize || line == "" {
		return nil
	}
	entry := trimLevels(line)
	switch {
	case strings.HasPrefix(entry, FolderMark):
		return c.folder
	case strings.HasPrefix(entry, FileMark):
		return c.file
	case isRule(line):
		return c.rule
	}
	return nil
}

// trimLevels strips the tree indent so the entry's own mark comes first.
func trimLevels(line string) string {
	for strings.HasPrefix(line, Level) {
		line = line[len(Level):]
	}
	return line
}

func isRule(line string) bool {
	return strings.Trim(line, "=") == "" || strings.Trim(line, "-") == ""
}

// IsTerminal reports whether w is an *os.File attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
