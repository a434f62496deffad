package sequence

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// estimatorBits sizes the bitset used to approximate a column's distinct
// value count: 2^18 slots, 32 KiB as a flat array of uint64 words.
const (
	estimatorBits = 18
	estimatorSize = 1 << estimatorBits
	estimatorMask = estimatorSize - 1
)

// estimateDistinct hashes every value in col into an 18-bit bitset and
// returns the number of slots that were set. It never overcounts: two equal
// values always land on the same slot. It can undercount on hash collisions
// between unequal values, which is acceptable for a pivot heuristic.
func estimateDistinct(col Indices) int {
	var bits [estimatorSize / 64]uint64
	count := 0
	var buf [4]byte
	for _, v := range col {
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		slot := xxhash.Sum64(buf[:]) & estimatorMask
		word, bit := slot/64, slot%64
		mask := uint64(1) << bit
		if bits[word]&mask == 0 {
			bits[word] |= mask
			count++
		}
	}
	return count
}
