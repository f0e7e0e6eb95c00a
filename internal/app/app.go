// Package app runs one report: header, tree walk, individual files, then
// delivery to disk and the optional extra outputs.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/jadenpxrk/treedump/internal/config"
	"github.com/jadenpxrk/treedump/internal/fetch"
	"github.com/jadenpxrk/treedump/internal/labels"
	"github.com/jadenpxrk/treedump/internal/output"
	"github.com/jadenpxrk/treedump/internal/render"
	"github.com/jadenpxrk/treedump/internal/report"
	"github.com/jadenpxrk/treedump/internal/source"
	"github.com/jadenpxrk/treedump/internal/tokens"
	"github.com/jadenpxrk/treedump/internal/walker"
)

// App holds everything a run needs. New fills in the production
// collaborators; tests swap them.
type App struct {
	Config config.Config
	Labels *labels.Labels
	Logger *zap.Logger
	Stdout io.Writer

	Now        func() time.Time
	Resolver   *source.Resolver
	Fetcher    *fetch.Fetcher
	Clipboard  func(text string) error
	NewCounter func(kind, model string) (tokens.Counter, error)
}

// New wires an App with production collaborators.
func New(cfg config.Config, l *labels.Labels, logger *zap.Logger, stdout io.Writer) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		Config:     cfg,
		Labels:     l,
		Logger:     logger,
		Stdout:     stdout,
		Now:        time.Now,
		Resolver:   &source.Resolver{Progress: os.Stderr, Logger: logger},
		Fetcher:    fetch.New(),
		Clipboard:  output.CopyToClipboard,
		NewCounter: tokens.New,
	}
}

// Run builds and writes the report and returns the absolute path of the
// written file. Only an inaccessible source root or an unwritable output
// file end the run with an error.
func (a *App) Run() (string, error) {
	cfg := a.Config
	l := a.Labels
	now := a.Now()

	buf := report.NewBuffer()
	console := report.NewConsole(a.Stdout)
	sink := report.Tee(buf, console)
	renderer := render.New(l)

	sink.WriteLine(l.ReportTitle())
	sink.WriteLine(l.Generated(now))
	sink.WriteLine(report.Rule("="))
	sink.WriteLine("")

	if err := a.walkSource(renderer, sink, console); err != nil {
		return "", err
	}

	sink.WriteLine("")
	sink.WriteLine(report.Rule("="))
	sink.WriteLine("")
	sink.WriteLine(l.IndividualFiles())
	sink.WriteLine("")

	for _, extra := range cfg.ExtraFiles {
		a.dumpExtra(renderer, sink, extra)
	}

	name := output.FileName(cfg.Output, cfg.OutputPrefix, now)
	if err := output.WriteReport(name, []byte(buf.String())); err != nil {
		return "", fmt.Errorf("error writing report: %w", err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		abs = name
	}
	console.WriteLine("")
	console.WriteLine(l.Saved(abs))

	a.deliverExtras(buf)
	return abs, nil
}

func (a *App) walkSource(renderer *render.Renderer, sink report.Sink, console report.Sink) error {
	cfg := a.Config

	shown := cfg.SourceRoot
	if !source.IsGitURL(shown) {
		if abs, err := filepath.Abs(shown); err == nil {
			shown = abs
		}
	}
	console.WriteLine(a.Labels.Analysing(shown))

	root, err := a.Resolver.Resolve(cfg.SourceRoot)
	if err != nil {
		return err
	}
	defer func() {
		if err := root.Cleanup(); err != nil {
			a.Logger.Warn("Could not remove temporary clone", zap.String("dir", root.Path), zap.Error(err))
		}
	}()

	opts := walker.Options{
		ExcludeDirs:       cfg.ExcludeDirs,
		ExcludeExtensions: cfg.ExcludeExtensions,
	}
	if cfg.RespectGitignore {
		m, err := walker.LoadGitignore(root.Path)
		if err != nil {
			a.Logger.Warn("Ignoring .gitignore", zap.Error(err))
		} else if m != nil {
			opts.Ignore = m
		}
	}

	stats, err := walker.New(renderer, opts, a.Logger).Run(root.Path, sink)
	if err != nil {
		return err
	}
	a.Logger.Debug("Tree walked",
		zap.String("root", root.Path),
		zap.Int("dirs", stats.Dirs),
		zap.Int("files", stats.Files),
		zap.Int("dumped", stats.Dumped),
		zap.Int("binary", stats.Binary),
		zap.Int("failed", stats.Failed),
		zap.Int("excluded", stats.Excluded),
		zap.Int("ignored", stats.Ignored),
		zap.Int("lines", stats.Lines))
	return nil
}

func (a *App) dumpExtra(renderer *render.Renderer, sink report.Sink, extra string) {
	if fetch.IsURL(extra) {
		sink.WriteLine(a.Labels.AnalysisOf(extra))
		sink.WriteLine(report.Rule("-"))
		doc, err := a.Fetcher.Fetch(extra)
		if err != nil {
			a.Logger.Warn("Could not fetch extra file", zap.String("url", extra), zap.Error(err))
			renderer.Failure(sink, "", err)
			return
		}
		renderer.Text(sink, doc.Name, doc.Text, doc.Binary, "")
		return
	}

	abs, err := filepath.Abs(extra)
	if err != nil {
		abs = extra
	}
	sink.WriteLine(a.Labels.AnalysisOf(abs))
	sink.WriteLine(report.Rule("-"))
	if res := renderer.File(sink, extra, ""); res.Kind == render.Failed || res.Kind == render.Missing {
		a.Logger.Warn("Could not read extra file", zap.String("path", abs), zap.Stringer("result", res.Kind), zap.Error(res.Err))
	}
}

// deliverExtras runs the optional outputs. Their failures are warnings.
func (a *App) deliverExtras(buf *report.Buffer) {
	cfg := a.Config

	if cfg.PDFOutput != "" {
		if err := output.WritePDF(cfg.PDFOutput, a.Labels.ReportTitle(), buf.Lines()); err != nil {
			a.Logger.Warn("PDF output failed", zap.Error(err))
		} else {
			a.Logger.Info("PDF written", zap.String("path", cfg.PDFOutput))
		}
	}

	if cfg.Clipboard {
		if err := a.Clipboard(buf.String()); err != nil {
			a.Logger.Warn("Clipboard copy failed", zap.Error(err))
		} else {
			a.Logger.Info("Report copied to clipboard")
		}
	}

	if cfg.CountTokens {
		counter, err := a.NewCounter(cfg.Tokenizer, cfg.TokenizerModel)
		if err != nil {
			a.Logger.Warn("Token counting disabled", zap.Error(err))
			return
		}
		n, err := counter.Count(buf.String())
		if err != nil {
			a.Logger.Warn("Token counting failed", zap.Error(err))
			return
		}
		a.Logger.Info("Report token count", zap.String("tokenizer", counter.Name()), zap.Int("tokens", n))
	}
}
