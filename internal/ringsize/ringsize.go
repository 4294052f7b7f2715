// Package ringsize provides power-of-two capacity sizing, adapted from
// grailbio/bio/circular's NextExp2 helper. The sequence buffer uses it to
// amortize growth without ever relocating a previously-allocated segment's
// base offset to a different logical position.
package ringsize

import "math/bits"

// NextExp2 returns the next power of 2 strictly greater than x.
func NextExp2(x int) int {
	log2 := 63 - bits.LeadingZeros64(uint64(x))
	return 2 << uint32(log2)
}
