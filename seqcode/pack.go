// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package seqcode

// PackASCII converts an ASCII IUPAC sequence to 4-bit packed form, two bases
// per byte: dst[i] holds seq[2*i] in its high nibble and seq[2*i+1] (if
// present) in its low nibble. len(dst) must equal (len(seq)+1)/2.
//
// This is a bulk form of the encoding the graph builder's sequence buffer
// applies when segments arrive as ASCII text (spec: "Input may arrive as ASCII
// (copied and encoded) or as pre-encoded 4-bit"); the builder itself writes
// nibbles one at a time and does not call PackASCII.
func PackASCII(dst []byte, seq []byte) {
	n := len(seq)
	full := n >> 1
	for i := 0; i < full; i++ {
		dst[i] = ASCIIToFourBit(seq[2*i])<<4 | ASCIIToFourBit(seq[2*i+1])
	}
	if n&1 == 1 {
		dst[full] = ASCIIToFourBit(seq[2*full]) << 4
	}
}

// GetNibble returns the 4-bit value at a base position within a packed
// buffer: even positions are the high nibble, odd positions the low nibble.
func GetNibble(packed []byte, pos int) byte {
	b := packed[pos>>1]
	if pos&1 == 0 {
		return b >> 4
	}
	return b & 0xf
}

// SetNibble writes the 4-bit value at a base position within a packed
// buffer, leaving the other nibble of the containing byte untouched.
func SetNibble(packed []byte, pos int, nibble byte) {
	idx := pos >> 1
	if pos&1 == 0 {
		packed[idx] = (packed[idx] & 0x0f) | (nibble << 4)
	} else {
		packed[idx] = (packed[idx] & 0xf0) | (nibble & 0x0f)
	}
}

// UnpackASCII renders a 4-bit packed buffer spanning [start,start+n) base
// positions back to ASCII, one byte per base.
func UnpackASCII(dst []byte, packed []byte, start, n int) {
	for i := 0; i < n; i++ {
		dst[i] = FourBitToASCII(GetNibble(packed, start+i))
	}
}

// complementNibble maps a 4-bit IUPAC union to the union of the complements
// of its member bases (A<->T, C<->G), preserving ambiguity structure.
func complementNibble(nibble byte) byte {
	var out byte
	if nibble&BaseA != 0 {
		out |= BaseT
	}
	if nibble&BaseT != 0 {
		out |= BaseA
	}
	if nibble&BaseC != 0 {
		out |= BaseG
	}
	if nibble&BaseG != 0 {
		out |= BaseC
	}
	return out
}

// ComplementFourBit is the exported single-symbol complement, used by the
// walker's reverse-orientation fetch function.
func ComplementFourBit(nibble byte) byte {
	return complementNibble(nibble)
}
