package sequence

import "sort"

// indexRange is an inclusive [start, end] run of indices sharing the same
// consecutive step.
type indexRange struct {
	start, end Index
}

// SplitBucket is a Bucket reduced to at most one remaining digit run. It is
// the unit the padding merger and packer operate on, and the source of every
// collated Item emitted by Parse (directories and names that bypass the
// bucketizer are emitted directly).
type SplitBucket struct {
	pattern       string
	sortedIndices []Index // ascending, no duplicates; nil once packed
	ranges        []indexRange
	step          int // set by pack() when it builds ranges; stays 0 if packing was declined or never ran
	padding       int // width of pattern's single '#' run; 0 is the merged/variable-width sentinel
}

func newSplitBucket(b *Bucket) *SplitBucket {
	sb := &SplitBucket{pattern: b.Pattern}
	if len(b.Columns) == 1 {
		sb.sortedIndices = append([]Index(nil), b.Columns[0]...)
		sort.Slice(sb.sortedIndices, func(i, j int) bool { return sb.sortedIndices[i] < sb.sortedIndices[j] })
		sb.padding = paddingWidth(b.Pattern)
	}
	return sb
}

func paddingWidth(pattern string) int {
	width := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == PaddingChar {
			width++
		}
	}
	return width
}

// pack finds the smallest step between consecutive sorted indices and, if it
// is at most 127 and there are at least two indices, folds runs sharing that
// step into ranges. Buckets with fewer than two indices, or a step too wide
// to record, are left untouched and stay Indiced at output time.
func (sb *SplitBucket) pack() {
	n := len(sb.sortedIndices)
	if n < 2 {
		return
	}
	step := minConsecutiveDiff(sb.sortedIndices)
	if step <= 0 || step > 127 {
		return
	}
	sb.step = step

	start := sb.sortedIndices[0]
	for i := 1; i < n; i++ {
		if int(sb.sortedIndices[i])-int(sb.sortedIndices[i-1]) != step {
			sb.ranges = append(sb.ranges, indexRange{start, sb.sortedIndices[i-1]})
			start = sb.sortedIndices[i]
		}
	}
	sb.ranges = append(sb.ranges, indexRange{start, sb.sortedIndices[n-1]})
	sb.sortedIndices = nil
}

func minConsecutiveDiff(sorted []Index) int {
	if len(sorted) < 2 {
		return -1
	}
	min := -1
	for i := 1; i < len(sorted); i++ {
		d := int(sorted[i]) - int(sorted[i-1])
		if min == -1 || d < min {
			min = d
		}
	}
	return min
}

// output emits the Items this SplitBucket reduces to. When bakeSingleton is
// set, a range or index set of exactly one value collapses to a Single item
// carrying the baked filename instead of a one-element Packed or Indiced
// item.
func (sb *SplitBucket) output(bakeSingleton bool, emit func(Item)) {
	if len(sb.ranges) > 0 {
		for _, r := range sb.ranges {
			if r.start == r.end && bakeSingleton {
				emit(Item{Type: Single, Filename: bakePatternValue(sb.pattern, r.start)})
				continue
			}
			emit(Item{
				Type:    Packed,
				Pattern: sb.pattern,
				Start:   r.start,
				End:     r.end,
				Step:    byte(sb.step),
				Padding: sb.padding,
			})
		}
		return
	}

	switch len(sb.sortedIndices) {
	case 0:
		emit(Item{Type: Single, Filename: sb.pattern})
	case 1:
		if bakeSingleton {
			emit(Item{Type: Single, Filename: bakePatternValue(sb.pattern, sb.sortedIndices[0])})
		} else {
			emit(Item{Type: Indiced, Pattern: sb.pattern, Indices: append([]Index(nil), sb.sortedIndices...), Padding: sb.padding})
		}
	default:
		emit(Item{Type: Indiced, Pattern: sb.pattern, Indices: append([]Index(nil), sb.sortedIndices...), Padding: sb.padding})
	}
}

// bakePatternValue replaces pattern's single '#' run with value's decimal
// form, zero-padded to the run's width unless the run is exactly one
// character wide, in which case the value is written without padding and
// may be wider than the original run.
func bakePatternValue(pattern string, value Index) string {
	prefix, suffix, err := getPrefixAndSuffix(pattern)
	if err != nil {
		return pattern
	}
	width := len(pattern) - len(prefix) - len(suffix)
	return prefix + bakeDecimal(value, width) + suffix
}

// mergeCompatiblePadding absorbs each SplitBucket into its predecessor when
// they share a prefix and suffix and their index sets are disjoint, losing
// the original padding width in the process (see Item.Padding). Buckets are
// assumed sorted by pattern already, so compatible candidates are adjacent.
func mergeCompatiblePadding(buckets []*SplitBucket) []*SplitBucket {
	if len(buckets) < 2 {
		return buckets
	}
	out := make([]*SplitBucket, 0, len(buckets))
	out = append(out, buckets[0])
	for _, next := range buckets[1:] {
		last := out[len(out)-1]
		if canMerge(last, next) {
			out[len(out)-1] = mergePaddingPair(last, next)
			continue
		}
		out = append(out, next)
	}
	return out
}

func canMerge(a, b *SplitBucket) bool {
	if paddingWidth(a.pattern) == 0 || paddingWidth(b.pattern) == 0 {
		return false
	}
	pa, sa, err := getPrefixAndSuffix(a.pattern)
	if err != nil {
		return false
	}
	pb, sb, err := getPrefixAndSuffix(b.pattern)
	if err != nil {
		return false
	}
	if pa != pb || sa != sb {
		return false
	}
	return disjoint(a.sortedIndices, b.sortedIndices)
}

func disjoint(a, b []Index) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return false
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return true
}

func mergePaddingPair(a, b *SplitBucket) *SplitBucket {
	prefix, suffix, _ := getPrefixAndSuffix(a.pattern)
	merged := append(append([]Index(nil), a.sortedIndices...), b.sortedIndices...)
	sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })
	return &SplitBucket{
		pattern:       prefix + string(PaddingChar) + suffix,
		sortedIndices: merged,
		padding:       0,
	}
}
