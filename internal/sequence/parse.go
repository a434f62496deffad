package sequence

import "strings"

// Entry is one directory entry handed to Parse by the caller's enumerator.
// Name must be the entry's leaf name, never a full or relative path: the
// engine never looks at path separators.
type Entry struct {
	Name        string
	IsDirectory bool
}

// NextEntry pulls the next directory entry into dst and reports whether one
// was available. Parse calls it until it returns false, the same pull-style
// protocol a caller streaming a large directory listing would want.
type NextEntry func(dst *Entry) bool

// Config controls how Parse reduces a bucket of same-shaped filenames down
// to Items.
type Config struct {
	// SplitStrategy picks the pivot column when a bucket still mixes more
	// than one filename across more than one digit run.
	SplitStrategy SplitStrategy
	// MergePadding absorbs adjacent buckets that differ only in
	// placeholder width and have disjoint index sets.
	MergePadding bool
	// Pack folds a bucket's sorted indices into start/end/step ranges.
	Pack bool
	// BakeSingleton replaces a range or index set of exactly one value
	// with a plain Single item carrying the baked filename.
	BakeSingleton bool
	// Sort orders the resulting Directories and Files slices
	// Single < Indiced < Packed < Invalid, then by the variant's own key.
	Sort bool
}

// Parse drains nextEntry and returns the collated folder content. It is pure:
// no filesystem access, no logging, and no state survives the call.
func Parse(name string, config Config, nextEntry NextEntry) FolderContent {
	var directories, files []Item
	bz := newBucketizer()

	var entry Entry
	for nextEntry(&entry) {
		if entry.IsDirectory {
			directories = append(directories, Item{Type: Single, Filename: entry.Name})
			continue
		}
		ingestFile(bz, entry.Name, &files)
	}

	buckets := bz.drain()
	splitBuckets := splitAll(config.SplitStrategy, buckets)

	if config.MergePadding && len(splitBuckets) >= 2 {
		splitBuckets = mergeCompatiblePadding(splitBuckets)
	}
	if config.Pack {
		for _, sb := range splitBuckets {
			sb.pack()
		}
	}
	for _, sb := range splitBuckets {
		sb.output(config.BakeSingleton, func(it Item) { files = append(files, it) })
	}

	if config.Sort {
		sortItems(directories)
		sortItems(files)
	}

	return FolderContent{Name: name, Directories: directories, Files: files}
}

// ingestFile routes a single filename either straight to the Files slice as
// a Single item (it contains the reserved placeholder character, or one of
// its digit runs overflows uint32) or into the bucketizer for collation. An
// empty name becomes an Invalid item.
func ingestFile(bz *bucketizer, name string, files *[]Item) {
	if name == "" {
		*files = append(*files, Item{Type: Invalid})
		return
	}
	if strings.IndexByte(name, PaddingChar) != -1 {
		*files = append(*files, Item{Type: Single, Filename: name})
		return
	}
	pattern, indices, overflowed := normalize(name)
	if overflowed {
		*files = append(*files, Item{Type: Single, Filename: name})
		return
	}
	bz.ingest(pattern, indices)
}
