package sequence

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Indices is one column of a Bucket: the values a single digit run took
// across every filename that shares the bucket's pattern.
type Indices []Index

// Bucket accumulates every filename that normalizes to the same pattern with
// the same number of digit runs. Columns is either empty, meaning every
// ingested name had no digits at all, or holds one Indices slice per run,
// all of equal length (one entry per ingested row).
type Bucket struct {
	Pattern string
	Columns []Indices
}

func (b *Bucket) ingest(row []Index) {
	if b.Columns == nil && len(row) > 0 {
		b.Columns = make([]Indices, len(row))
	}
	for i, v := range row {
		b.Columns[i] = append(b.Columns[i], v)
	}
}

// splittable reports whether the bucket still mixes more than one filename
// across more than one digit run, meaning a pivot choice can still reduce
// it further.
func (b *Bucket) splittable() bool {
	return len(b.Columns) > 1 && len(b.Columns[0]) > 1
}

// single reports whether the bucket holds exactly one filename's worth of
// columns, each still carrying its own digit run.
func (b *Bucket) single() bool {
	return len(b.Columns) > 0 && len(b.Columns[0]) == 1
}

// bucketizer is a hash-keyed multimap from (pattern, column count) to the
// Bucket collecting rows with that shape. Collisions are resolved by a short
// linear scan of the bucket list sharing a hash slot.
type bucketizer struct {
	buckets map[uint64][]*Bucket
}

func newBucketizer() *bucketizer {
	return &bucketizer{buckets: make(map[uint64][]*Bucket)}
}

func bucketHash(pattern string, columns int) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(pattern)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(columns))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

func (bz *bucketizer) ingest(pattern string, row []Index) {
	key := bucketHash(pattern, len(row))
	list := bz.buckets[key]
	for _, b := range list {
		if b.Pattern == pattern && len(b.Columns) == len(row) {
			b.ingest(row)
			return
		}
	}
	nb := &Bucket{Pattern: pattern}
	nb.ingest(row)
	bz.buckets[key] = append(list, nb)
}

// drain returns every bucket accumulated so far and resets the bucketizer.
func (bz *bucketizer) drain() []*Bucket {
	out := make([]*Bucket, 0, len(bz.buckets))
	for _, list := range bz.buckets {
		out = append(out, list...)
	}
	bz.buckets = make(map[uint64][]*Bucket)
	return out
}
