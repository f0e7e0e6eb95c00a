package walker

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jadenpxrk/treedump/internal/render"
	"github.com/jadenpxrk/treedump/internal/report"
)

// DefaultExcludeDirs returns the directory names skipped when none are
// configured: version control, dependency caches, virtualenvs, bytecode
// caches and editor settings.
func DefaultExcludeDirs() []string {
	return []string{".git", "node_modules", "venv", "__pycache__", ".idea", ".vscode"}
}

// DefaultExcludeExtensions returns the compiled, media and archive
// extensions skipped when none are configured.
func DefaultExcludeExtensions() []string {
	return []string{
		".pyc", ".pyo", ".pyd", ".dll", ".exe", ".obj", ".o", ".a", ".lib", ".so", ".dylib",
		".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".svg", ".mp3", ".mp4", ".avi", ".mov",
		".zip", ".tar", ".gz", ".rar", ".7z",
	}
}

// Matcher decides whether a path is ignored. go-gitignore's IgnoreMatcher
// satisfies it.
type Matcher interface {
	Match(path string, isDir bool) bool
}

// Options configures a Walker. Exclusions match exactly and
// case-sensitively.
type Options struct {
	ExcludeDirs       []string
	ExcludeExtensions []string
	// Ignore, when set, prunes any further paths it matches.
	Ignore Matcher
}

// Stats counts what a walk produced.
type Stats struct {
	Dirs     int
	Files    int
	Dumped   int
	Binary   int
	Failed   int
	Excluded int
	Ignored  int
	Lines    int
}

// Walker renders directory trees.
type Walker struct {
	renderer *render.Renderer
	opts     Options
	logger   *zap.Logger

	dirs map[string]struct{}
	exts map[string]struct{}
}

func New(r *render.Renderer, opts Options, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		renderer: r,
		opts:     opts,
		logger:   logger,
		dirs:     toSet(opts.ExcludeDirs),
		exts:     toSet(opts.ExcludeExtensions),
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// Run writes the title block and then the tree under root into sink. Only
// failure to access root is returned; per-file problems are written into
// the report.
func (w *Walker) Run(root string, sink report.Sink) (Stats, error) {
	var stats Stats

	abs, err := filepath.Abs(root)
	if err != nil {
		return stats, fmt.Errorf("error resolving path %s: %w", root, err)
	}

	l := w.renderer.Labels()
	sink.WriteLine(l.WalkTitle(abs))
	sink.WriteLine(report.Rule("="))
	sink.WriteLine("")

	visit := func(n Node) error {
		stats.Dirs++
		sink.WriteLine(report.Indent(n.Depth) + report.FolderMark + n.Name + "/")

		fileIndent := report.Indent(n.Depth + 1)
		contentIndent := report.Indent(n.Depth + 2)
		for _, name := range n.Files {
			path := filepath.Join(n.Path, name)
			if _, skip := w.exts[Ext(name)]; skip {
				stats.Excluded++
				continue
			}
			if w.opts.Ignore != nil && w.opts.Ignore.Match(path, false) {
				stats.Ignored++
				continue
			}
			stats.Files++
			res := w.renderer.Entry(sink, path, name, fileIndent, contentIndent)
			switch res.Kind {
			case render.Dumped:
				stats.Dumped++
				stats.Lines += res.Lines
			case render.Binary:
				stats.Binary++
			default:
				stats.Failed++
				w.logger.Warn("Could not read file", zap.String("path", path), zap.Error(res.Err))
			}
		}
		return nil
	}

	onSkip := func(path string, err error) {
		w.logger.Warn("Skipping unreadable directory", zap.String("path", path), zap.Error(err))
	}

	if err := Walk(root, w.prune, visit, onSkip); err != nil {
		return stats, err
	}
	return stats, nil
}

func (w *Walker) prune(name, path string) bool {
	if _, skip := w.dirs[name]; skip {
		return true
	}
	if w.opts.Ignore != nil && w.opts.Ignore.Match(path, true) {
		w.logger.Debug("Pruned by ignore rules", zap.String("path", path))
		return true
	}
	return false
}

// Ext returns the extension of a file name, dot included. Leading dots do
// not start an extension, so ".env" has none and "a.tar.gz" has ".gz".
func Ext(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 || strings.TrimLeft(name[:i], ".") == "" {
		return ""
	}
	return name[i:]
}
