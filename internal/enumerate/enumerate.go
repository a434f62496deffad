// Package enumerate walks a single directory and feeds its entries to the
// collation engine through the pull-style sequence.NextEntry protocol, with
// include/exclude glob filtering and optional .gitignore awareness.
package enumerate

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fseq/fseq/internal/config"
	"github.com/fseq/fseq/internal/sequence"
)

// Options selects which entries of Root the enumerator yields.
type Options struct {
	Root string
	// Include globs; empty means everything. Matched against the leaf
	// name, directories are always yielded regardless.
	Include []string
	// Exclude globs; matched against the leaf name of files and
	// directories alike.
	Exclude []string
	// Gitignore, when non-nil, suppresses entries its patterns ignore.
	Gitignore *config.GitignoreParser
	// FollowSymlinks resolves symlinked entries to their target type
	// instead of skipping them.
	FollowSymlinks bool
}

// Enumerator is a snapshot of one directory listing, consumed entry by
// entry. It satisfies the engine's contract that the callback captures
// nothing across invocations: the snapshot is taken once in New and the
// filesystem is never touched again.
type Enumerator struct {
	entries []sequence.Entry
	pos     int
}

// New reads opts.Root once and returns an enumerator over the filtered
// listing. Entries come back sorted by name, as os.ReadDir returns them.
func New(opts Options) (*Enumerator, error) {
	dirEntries, err := os.ReadDir(opts.Root)
	if err != nil {
		return nil, err
	}

	e := &Enumerator{entries: make([]sequence.Entry, 0, len(dirEntries))}
	for _, de := range dirEntries {
		name := de.Name()
		isDir := de.IsDir()

		if de.Type()&os.ModeSymlink != 0 {
			if !opts.FollowSymlinks {
				continue
			}
			info, err := os.Stat(filepath.Join(opts.Root, name))
			if err != nil {
				continue // dangling link
			}
			isDir = info.IsDir()
		}

		if !keep(opts, name, isDir) {
			continue
		}
		e.entries = append(e.entries, sequence.Entry{Name: name, IsDirectory: isDir})
	}
	return e, nil
}

func keep(opts Options, name string, isDir bool) bool {
	if opts.Gitignore != nil && opts.Gitignore.ShouldIgnore(name, isDir) {
		return false
	}
	for _, pattern := range opts.Exclude {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return false
		}
	}
	if isDir || len(opts.Include) == 0 {
		return true
	}
	for _, pattern := range opts.Include {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Next writes the next entry into dst, reporting false at end of listing.
// It is the sequence.NextEntry the façade wants.
func (e *Enumerator) Next(dst *sequence.Entry) bool {
	if e.pos >= len(e.entries) {
		return false
	}
	*dst = e.entries[e.pos]
	e.pos++
	return true
}

// Len reports how many entries survived filtering.
func (e *Enumerator) Len() int {
	return len(e.entries)
}

// Collate is the one-call convenience wrapper the CLI and MCP server use:
// enumerate opts.Root and run the engine over it.
func Collate(opts Options, cfg sequence.Config) (sequence.FolderContent, error) {
	e, err := New(opts)
	if err != nil {
		return sequence.FolderContent{}, err
	}
	return sequence.Parse(opts.Root, cfg, e.Next), nil
}
