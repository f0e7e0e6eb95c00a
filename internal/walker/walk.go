// Package walker maps a directory tree into a report: one line per folder,
// and for each eligible file either a binary marker or its numbered listing.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Node is one directory yielded by Walk.
type Node struct {
	Path  string   // root joined with Rel
	Rel   string   // "." for the root
	Name  string   // base name of Path
	Depth int      // 0 for the root
	Dirs  []string // subdirectories that will be visited, sorted
	Files []string // file names, sorted by code point
}

// PruneFunc reports whether the subdirectory name at path should be skipped,
// together with everything below it.
type PruneFunc func(name, path string) bool

// VisitFunc is called once per directory, parents before children.
type VisitFunc func(n Node) error

// SkipFunc is told about subdirectories that could not be listed.
type SkipFunc func(path string, err error)

// Walk traverses root depth-first and top-down. Pruning happens before
// descent, so a pruned directory is never listed. Symlinks to directories
// are not followed; symlinks to anything else count as files. Sockets,
// pipes and devices are ignored.
//
// Failing to list root is returned as an error. Failing to list a
// subdirectory is reported to onSkip and the walk continues.
func Walk(root string, prune PruneFunc, visit VisitFunc, onSkip SkipFunc) error {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("error accessing path %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("error accessing path %s: not a directory", root)
	}
	n, err := readNode(root, ".", 0, prune)
	if err != nil {
		return fmt.Errorf("error reading directory %s: %w", root, err)
	}
	return walkNode(n, prune, visit, onSkip)
}

func walkNode(n Node, prune PruneFunc, visit VisitFunc, onSkip SkipFunc) error {
	if err := visit(n); err != nil {
		return err
	}
	for _, name := range n.Dirs {
		rel := name
		if n.Rel != "." {
			rel = filepath.Join(n.Rel, name)
		}
		child, err := readNode(filepath.Join(n.Path, name), rel, n.Depth+1, prune)
		if err != nil {
			if onSkip != nil {
				onSkip(filepath.Join(n.Path, name), err)
			}
			continue
		}
		if err := walkNode(child, prune, visit, onSkip); err != nil {
			return err
		}
	}
	return nil
}

func readNode(path, rel string, depth int, prune PruneFunc) (Node, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return Node{}, err
	}
	n := Node{Path: path, Rel: rel, Name: filepath.Base(path), Depth: depth}
	for _, e := range entries {
		full := filepath.Join(path, e.Name())
		switch kind := entryKind(e, full); kind {
		case kindDir:
			if prune != nil && prune(e.Name(), full) {
				continue
			}
			n.Dirs = append(n.Dirs, e.Name())
		case kindFile:
			n.Files = append(n.Files, e.Name())
		}
	}
	sort.Strings(n.Dirs)
	sort.Strings(n.Files)
	return n, nil
}

type kind int

const (
	kindOther kind = iota
	kindDir
	kindFile
)

func entryKind(e fs.DirEntry, full string) kind {
	t := e.Type()
	switch {
	case t.IsDir():
		return kindDir
	case t.IsRegular():
		return kindFile
	case t&fs.ModeSymlink != 0:
		target, err := os.Stat(full)
		if err != nil {
			// Dangling link: listed as a file so the read error is reported.
			return kindFile
		}
		if target.IsDir() {
			return kindOther
		}
		if target.Mode().IsRegular() {
			return kindFile
		}
	}
	return kindOther
}
