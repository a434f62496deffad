package sequence

import (
	"sort"
	"strconv"
	"strings"
)

// SplitStrategy chooses which digit run a splittable Bucket pivots on when
// it still mixes more than one filename across more than one run.
type SplitStrategy int

const (
	// RetainHighestVariance pivots on the run with the fewest distinct
	// values, keeping the run that best explains the filename family
	// together as a single column. It is the default: it tends to produce
	// the fewest, most useful ranges.
	RetainHighestVariance SplitStrategy = iota
	// RetainNone never pivots: every splittable bucket is flattened
	// straight into one baked filename per row.
	RetainNone
	// RetainFirst pivots on the run closest to the end of the filename
	// that still precedes the final extension dot, falling back to the
	// last run when none qualifies or there is no dot.
	RetainFirst
	// RetainLast always pivots on the first digit run.
	RetainLast
)

// noPivot signals that a strategy declined to choose a column.
const noPivot = -1

func getPivotIndex(strategy SplitStrategy, b *Bucket) int {
	switch strategy {
	case RetainNone:
		return noPivot
	case RetainFirst:
		return retainFirstPivot(b)
	case RetainLast:
		return 0
	default:
		return retainHighestVariancePivot(b)
	}
}

// retainFirstPivot walks columns from last to first and returns the first
// one whose placeholder run starts strictly before the filename's final
// extension dot. If no column qualifies, or the pattern has no dot, the
// last column is retained instead.
func retainFirstPivot(b *Bucket) int {
	last := len(b.Columns) - 1
	dotPos := strings.LastIndexByte(b.Pattern, '.')
	if dotPos < 0 {
		return last
	}
	locs := placeholderStarts(b.Pattern)
	for i := last; i >= 0; i-- {
		if locs[i] < dotPos {
			return i
		}
	}
	return last
}

// retainHighestVariancePivot returns the column with the fewest estimated
// distinct values, so that the column with the highest estimate — the one
// that looks most like the "real" sequence index — is the one kept intact
// across the split. A tie for the maximum estimate means no column stands
// out, so the strategy declines to pivot at all.
func retainHighestVariancePivot(b *Bucket) int {
	estimates := make([]int, len(b.Columns))
	for i, col := range b.Columns {
		estimates[i] = estimateDistinct(col)
	}
	maxEst := estimates[0]
	for _, e := range estimates[1:] {
		if e > maxEst {
			maxEst = e
		}
	}
	maxCount := 0
	for _, e := range estimates {
		if e == maxEst {
			maxCount++
		}
	}
	if maxCount > 1 {
		return noPivot
	}
	minIdx := 0
	for i, e := range estimates {
		if e < estimates[minIdx] {
			minIdx = i
		}
	}
	return minIdx
}

// split partitions a bucket's rows by their value in column index, dropping
// that column and baking its value into the pattern for each resulting
// bucket. Order of the returned buckets follows first appearance of each
// pivot value, for deterministic output independent of map iteration order.
func (b *Bucket) split(index int) []*Bucket {
	pivotCol := b.Columns[index]
	groups := make(map[Index]*Bucket, len(pivotCol))
	order := make([]Index, 0, len(pivotCol))

	for row, v := range pivotCol {
		g, ok := groups[v]
		if !ok {
			g = &Bucket{Pattern: bakeNthPlaceholder(b.Pattern, index, v)}
			groups[v] = g
			order = append(order, v)
		}
		if len(b.Columns) > 1 {
			newRow := make([]Index, 0, len(b.Columns)-1)
			for col := range b.Columns {
				if col == index {
					continue
				}
				newRow = append(newRow, b.Columns[col][row])
			}
			g.ingest(newRow)
		} else {
			g.ingest(nil)
		}
	}

	out := make([]*Bucket, len(order))
	for i, v := range order {
		out[i] = groups[v]
	}
	return out
}

// flatten bakes every remaining column into the pattern, producing one
// zero-column bucket per row.
func (b *Bucket) flatten() []*Bucket {
	if len(b.Columns) == 0 {
		return []*Bucket{b}
	}
	rows := len(b.Columns[0])
	out := make([]*Bucket, 0, rows)
	for row := 0; row < rows; row++ {
		pattern := b.Pattern
		for col := range b.Columns {
			pattern = bakeFirstPlaceholder(pattern, b.Columns[col][row])
		}
		out = append(out, &Bucket{Pattern: pattern})
	}
	return out
}

// bakeNthPlaceholder replaces the index-th '#' run in pattern with the
// zero-padded decimal of value, using that run's own width.
func bakeNthPlaceholder(pattern string, index int, value Index) string {
	starts := placeholderStarts(pattern)
	start := starts[index]
	end := start
	for end < len(pattern) && pattern[end] == PaddingChar {
		end++
	}
	return pattern[:start] + bakeDecimal(value, end-start) + pattern[end:]
}

// bakeFirstPlaceholder replaces the first remaining '#' run in pattern.
func bakeFirstPlaceholder(pattern string, value Index) string {
	start := strings.IndexByte(pattern, PaddingChar)
	end := start
	for end < len(pattern) && pattern[end] == PaddingChar {
		end++
	}
	return pattern[:start] + bakeDecimal(value, end-start) + pattern[end:]
}

// bakeDecimal zero-pads value's decimal form to width, or returns it
// unpadded if it is already wider than width (which only happens for
// width-1 runs, since every other run's width was observed directly from
// the source filenames that produced it).
func bakeDecimal(value Index, width int) string {
	s := strconv.FormatUint(uint64(value), 10)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// splitAll drives the worklist until every bucket has been reduced to a
// SplitBucket with at most one column, applying strategy at every pivot
// decision. No recursion is used: LIFO popping and FIFO popping both yield
// the same set of SplitBuckets, just in a different order, and the result is
// sorted by pattern before being returned.
func splitAll(strategy SplitStrategy, buckets []*Bucket) []*SplitBucket {
	worklist := append([]*Bucket(nil), buckets...)
	var out []*SplitBucket

	for len(worklist) > 0 {
		b := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		switch {
		case b.splittable():
			pivot := getPivotIndex(strategy, b)
			if pivot == noPivot {
				worklist = append(worklist, b.flatten()...)
			} else {
				worklist = append(worklist, b.split(pivot)...)
			}
		case b.single():
			worklist = append(worklist, b.flatten()...)
		default:
			out = append(out, newSplitBucket(b))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].pattern < out[j].pattern })
	return out
}
