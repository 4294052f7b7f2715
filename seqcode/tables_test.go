// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package seqcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestASCIIFourBitRoundTrip(t *testing.T) {
	for _, ch := range []byte("ACGTURYSWKMBDHVN") {
		nibble := ASCIIToFourBit(ch)
		got := FourBitToASCII(nibble)
		// U collapses onto T; every other symbol round-trips exactly.
		if ch == 'U' {
			require.Equal(t, byte('T'), got)
			continue
		}
		require.Equal(t, ch, got, "ch=%c", ch)
	}
}

func TestASCIIToFourBitLowercase(t *testing.T) {
	require.Equal(t, ASCIIToFourBit('a'), ASCIIToFourBit('A'))
	require.Equal(t, ASCIIToFourBit('r'), ASCIIToFourBit('R'))
}

func TestASCIIToFourBitInvalidIsGap(t *testing.T) {
	require.Equal(t, byte(0), ASCIIToFourBit('X'))
	require.Equal(t, byte(0), ASCIIToFourBit(200))
}

func TestASCIITwoBit(t *testing.T) {
	require.Equal(t, byte(0), ASCIIToTwoBit('A'))
	require.Equal(t, byte(1), ASCIIToTwoBit('C'))
	require.Equal(t, byte(2), ASCIIToTwoBit('G'))
	require.Equal(t, byte(3), ASCIIToTwoBit('T'))
	// Ambiguity codes and invalid bytes fall back to 'A' (behaviour
	// preservation, not validation).
	require.Equal(t, byte(0), ASCIIToTwoBit('N'))
	require.Equal(t, byte(0), ASCIIToTwoBit('R'))

	for code := byte(0); code < 4; code++ {
		require.Equal(t, code, ASCIIToTwoBit(TwoBitToASCII(code)))
	}
}

func TestPopcount4(t *testing.T) {
	require.Equal(t, 0, Popcount4(0))
	require.Equal(t, 1, Popcount4(BaseA))
	require.Equal(t, 2, Popcount4(BaseA|BaseG))
	require.Equal(t, 4, Popcount4(BaseA|BaseC|BaseG|BaseT))
}

func TestExpansionBase(t *testing.T) {
	// R = A|G: expansion order is increasing base code, i.e. A then G.
	r := BaseA | BaseG
	require.Equal(t, byte(0), ExpansionBase(r, 0)) // A
	require.Equal(t, byte(2), ExpansionBase(r, 1)) // G

	require.Panics(t, func() { ExpansionBase(r, 2) })
}

func TestComplementFourBit(t *testing.T) {
	require.Equal(t, BaseT, ComplementFourBit(BaseA))
	require.Equal(t, BaseA, ComplementFourBit(BaseT))
	require.Equal(t, BaseG, ComplementFourBit(BaseC))
	require.Equal(t, BaseC, ComplementFourBit(BaseG))
	// Ambiguity is preserved under complement.
	require.Equal(t, BaseC|BaseT, ComplementFourBit(BaseA|BaseG))
}
