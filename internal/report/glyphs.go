package report

import "strings"

// Tree and listing glyphs shared by the walker and the renderer.
const (
	FolderMark = "📁 "
	FileMark   = "📄 "
	Branch     = "├── "
	LastBranch = "└── "
	Level      = "│   "
	NumberBar  = " │ "

	RuleWidth = 80
)

// Indent returns the tree indent for the given nesting depth.
func Indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(Level, depth)
}

// Rule returns a RuleWidth-wide line of ch.
func Rule(ch string) string {
	return strings.Repeat(ch, RuleWidth)
}
