package config

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// GitignorePattern is one parsed line of a .gitignore file.
type GitignorePattern struct {
	Pattern  string
	Negation bool
	DirOnly  bool
	Anchored bool
	regex    *regexp.Regexp
}

// GitignoreParser answers "should this entry be skipped" for the enumerator
// when respect_gitignore is enabled. It understands the subset of gitignore
// syntax that matters for a flat directory listing: literal names, glob
// patterns, trailing-slash directory patterns, leading-slash anchoring, and
// `!` negation. Later patterns win, matching git's own precedence.
type GitignoreParser struct {
	patterns []GitignorePattern
}

// NewGitignoreParser creates an empty parser.
func NewGitignoreParser() *GitignoreParser {
	return &GitignoreParser{}
}

// LoadGitignore reads rootPath/.gitignore if it exists. A missing file
// leaves the parser empty and is not an error.
func (gp *GitignoreParser) LoadGitignore(rootPath string) error {
	file, err := os.Open(filepath.Join(rootPath, ".gitignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		gp.AddPattern(scanner.Text())
	}
	return scanner.Err()
}

// AddPattern parses one gitignore line and appends it. Blank lines and
// comments are dropped.
func (gp *GitignoreParser) AddPattern(line string) {
	line = strings.TrimRight(line, " \t")
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	p := GitignorePattern{}
	if strings.HasPrefix(line, "!") {
		p.Negation = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.DirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		p.Anchored = true
		line = line[1:]
	}
	if line == "" {
		return
	}

	p.Pattern = line
	if strings.ContainsAny(line, "*?[") {
		p.regex = compileGlob(line)
	}
	gp.patterns = append(gp.patterns, p)
}

// compileGlob converts a gitignore glob to an anchored regular expression.
// `**` crosses path separators, `*` and `?` do not.
func compileGlob(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				b.WriteString(".*")
				i++
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		case '.', '+', '(', ')', '|', '^', '$', '{', '}', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil
	}
	return re
}

// ShouldIgnore reports whether the entry named path (a leaf name or a
// slash-separated relative path) is ignored. The last matching pattern
// decides, so `!keep.log` after `*.log` un-ignores keep.log.
func (gp *GitignoreParser) ShouldIgnore(path string, isDir bool) bool {
	path = strings.TrimPrefix(filepath.ToSlash(path), "/")
	ignored := false
	for _, p := range gp.patterns {
		if p.DirOnly && !isDir {
			continue
		}
		if gp.matches(p, path) {
			ignored = !p.Negation
		}
	}
	return ignored
}

func (gp *GitignoreParser) matches(p GitignorePattern, path string) bool {
	// Unanchored patterns match the leaf as well as the whole path.
	candidates := []string{path}
	if !p.Anchored {
		if base := filepath.Base(path); base != path {
			candidates = append(candidates, base)
		}
	}
	for _, c := range candidates {
		if p.regex != nil {
			if p.regex.MatchString(c) {
				return true
			}
			continue
		}
		if c == p.Pattern {
			return true
		}
	}
	return false
}

// PatternCount reports how many usable patterns were parsed.
func (gp *GitignoreParser) PatternCount() int {
	return len(gp.patterns)
}
