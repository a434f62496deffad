// Package sequence implements the collation engine: turning a flat list of
// filenames into a compact set of Items by finding numbered runs and folding
// them into ranges. The engine is pure — it never touches a filesystem, never
// logs, and holds no state across calls to Parse.
package sequence

// Index is a parsed numeric run, always in [0, 2^32-1].
type Index uint32

// maxIndex is the largest value an Index can legally hold.
const maxIndex = 1<<32 - 1

// parseIndex accumulates the ASCII decimal digits in digits into a uint32,
// reporting overflow rather than wrapping. The overflow check happens before
// each multiply and each add, mirroring how a streaming digit-at-a-time
// parser would have to behave; once overflowed is true the returned value is
// meaningless and must be discarded by the caller.
func parseIndex(digits string) (value Index, overflowed bool) {
	var acc uint64
	for i := 0; i < len(digits); i++ {
		d := uint64(digits[i] - '0')
		if acc > maxIndex/10 {
			overflowed = true
		}
		acc *= 10
		if acc > maxIndex-d {
			overflowed = true
		}
		acc += d
	}
	return Index(acc), overflowed
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
