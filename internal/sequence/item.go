package sequence

import (
	"sort"

	ferrors "github.com/fseq/fseq/internal/errors"
)

// ItemType tags which variant of Item is populated.
type ItemType int

const (
	// Single is a standalone file or directory with no detected sequence.
	Single ItemType = iota
	// Indiced is a pattern with an explicit set of indices.
	Indiced
	// Packed is a pattern covering a contiguous range on a fixed step.
	Packed
	// Invalid marks a pathological construction request; Parse produces it
	// only for an entry with an empty name.
	Invalid
)

// MaxPadding is the largest width an explicitly constructed pattern's
// placeholder run may have.
const MaxPadding = 10

// Item is one entry of a collated folder listing. Only the fields relevant
// to Type are meaningful; the zero value of the others is not significant.
type Item struct {
	Type ItemType

	// Single
	Filename string

	// Indiced and Packed
	Pattern string
	Padding int // 0 is the merged/variable-width sentinel

	// Indiced only, ascending, no duplicates
	Indices []Index

	// Packed only
	Start, End Index
	Step       byte
}

// FolderContent is the collated result of one directory listing.
type FolderContent struct {
	Name        string
	Directories []Item
	Files       []Item
}

// lessItem orders items Single < Indiced < Packed < Invalid, then by the
// variant's own natural key.
func lessItem(a, b Item) bool {
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	switch a.Type {
	case Single:
		return a.Filename < b.Filename
	case Indiced:
		if a.Pattern != b.Pattern {
			return a.Pattern < b.Pattern
		}
		return lessIndices(a.Indices, b.Indices)
	case Packed:
		if a.Pattern != b.Pattern {
			return a.Pattern < b.Pattern
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		if a.Padding != b.Padding {
			return a.Padding < b.Padding
		}
		return a.Step < b.Step
	default:
		return false
	}
}

func lessIndices(a, b []Index) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool { return lessItem(items[i], items[j]) })
}

// getPrefixAndSuffix splits pattern around its single run of PaddingChar,
// returning the text before and after it. It fails if pattern has no
// placeholder run, if the placeholder characters are not contiguous, or if
// the run is wider than MaxPadding.
func getPrefixAndSuffix(pattern string) (prefix, suffix string, err error) {
	first := -1
	last := -1
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == PaddingChar {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return "", "", ferrors.NewPatternError(ferrors.ErrorTypeMalformedPattern, "getPrefixAndSuffix", pattern)
	}
	for i := first; i <= last; i++ {
		if pattern[i] != PaddingChar {
			return "", "", ferrors.NewPatternError(ferrors.ErrorTypeMultiplePaddingRuns, "getPrefixAndSuffix", pattern)
		}
	}
	if last-first+1 > MaxPadding {
		return "", "", ferrors.NewPatternError(ferrors.ErrorTypeTooLargePadding, "getPrefixAndSuffix", pattern)
	}
	return pattern[:first], pattern[last+1:], nil
}

// getPadding returns the width of pattern's single placeholder run.
func getPadding(pattern string) (int, error) {
	prefix, suffix, err := getPrefixAndSuffix(pattern)
	if err != nil {
		return 0, err
	}
	return len(pattern) - len(prefix) - len(suffix), nil
}

// BuildPattern assembles a pattern string from a literal prefix, suffix, and
// placeholder width. A padding of 0 is treated as a single placeholder
// character, matching the width-1 baking rule used throughout this package.
func BuildPattern(prefix, suffix string, padding int) (string, error) {
	if padding <= 0 {
		padding = 1
	}
	if padding > MaxPadding {
		return "", ferrors.NewPatternError(ferrors.ErrorTypeTooLargePadding, "createPattern", prefix+suffix)
	}
	run := make([]byte, padding)
	for i := range run {
		run[i] = PaddingChar
	}
	return prefix + string(run) + suffix, nil
}

// NewSinglePattern constructs a Single item from filename, or an Invalid
// item if filename contains the reserved PaddingChar.
func NewSinglePattern(filename string) Item {
	for i := 0; i < len(filename); i++ {
		if filename[i] == PaddingChar {
			return Item{Type: Invalid}
		}
	}
	return Item{Type: Single, Filename: filename}
}

// NewPackedPattern constructs a Packed item covering [start, end] on the
// given step, extracting padding from pattern's placeholder run. It returns
// an Invalid item (not an error) for step == 0 or end < start, since those
// are caller mistakes about the range itself rather than the pattern
// grammar; a malformed pattern still fails loudly.
func NewPackedPattern(pattern string, start, end Index, step byte) (Item, error) {
	if step == 0 || end < start {
		return Item{Type: Invalid}, nil
	}
	padding, err := getPadding(pattern)
	if err != nil {
		return Item{}, err
	}
	return Item{Type: Packed, Pattern: pattern, Start: start, End: end, Step: step, Padding: padding}, nil
}

// NewIndicedPattern constructs an Indiced item from an already-sorted,
// deduplicated index set. Unlike NewPackedPattern it performs no validation
// beyond pattern well-formedness: any non-empty index set is accepted.
func NewIndicedPattern(pattern string, indices []Index) (Item, error) {
	padding, err := getPadding(pattern)
	if err != nil {
		return Item{}, err
	}
	return Item{Type: Indiced, Pattern: pattern, Indices: indices, Padding: padding}, nil
}
