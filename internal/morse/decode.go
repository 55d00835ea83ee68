package morse

import (
	"iter"
	"math/bits"
)

// dashMask selects the low three bits of a mirrored pattern. A full match is a dash.
const dashMask = 0x0007

// Mirror reverses the bit order of a 16-bit pattern, e.g. 1011 1000 ... -> ... 0001 1101
func Mirror(value uint16) uint16 {
	return bits.Reverse16(value)
}

// Walk lazily decodes a left-justified pattern into its symbols.
// The sequence can be ranged over any number of times.
func Walk(pattern uint16) iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		v := Mirror(pattern)
		for v&dashMask != 0 {
			if v&dashMask == dashMask {
				// three signal bits plus the separator
				v >>= 4
				if !yield(Dash) {
					return
				}
				continue
			}
			v >>= 2
			if !yield(Dot) {
				return
			}
		}
	}
}

// Decode collects the symbols of a left-justified pattern
func Decode(pattern uint16) []Symbol {
	var out []Symbol
	for s := range Walk(pattern) {
		out = append(out, s)
	}
	return out
}
