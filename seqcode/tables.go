// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package seqcode provides the small, fixed, content-addressed lookup tables
// used to move nucleotide sequence between three representations: ASCII
// (with IUPAC ambiguity codes), 4-bit packed (one nibble per base, bit i set
// iff base i in {A,C,G,T} is a member of the IUPAC class), and 2-bit packed
// (unambiguous A/C/G/T only, two bits per base).
//
// It is a narrow adaptation of grailbio/bio/biosimd's nibble-table approach,
// specialized for IUPAC-aware graph indexing instead of raw .bam/.fa
// processing.
package seqcode

// Base4 bit flags, indexed into an IUPAC union by OR-ing together.
const (
	BaseA = 1 << iota
	BaseC
	BaseG
	BaseT
)

// asciiToFourBit maps a 7-bit ASCII byte to the 4-bit IUPAC union. Unrecognized
// bytes map to 0, identical in spirit to 'N' being a no-expansion gap: the
// walker treats a 4-bit value of 0 as having zero concrete expansions.
var asciiToFourBit = [128]byte{
	'A': BaseA, 'a': BaseA,
	'C': BaseC, 'c': BaseC,
	'G': BaseG, 'g': BaseG,
	'T': BaseT, 't': BaseT,
	'U': BaseT, 'u': BaseT,
	'R': BaseA | BaseG, 'r': BaseA | BaseG,
	'Y': BaseC | BaseT, 'y': BaseC | BaseT,
	'S': BaseC | BaseG, 's': BaseC | BaseG,
	'W': BaseA | BaseT, 'w': BaseA | BaseT,
	'K': BaseG | BaseT, 'k': BaseG | BaseT,
	'M': BaseA | BaseC, 'm': BaseA | BaseC,
	'B': BaseC | BaseG | BaseT, 'b': BaseC | BaseG | BaseT,
	'D': BaseA | BaseG | BaseT, 'd': BaseA | BaseG | BaseT,
	'H': BaseA | BaseC | BaseT, 'h': BaseA | BaseC | BaseT,
	'V': BaseA | BaseC | BaseG, 'v': BaseA | BaseC | BaseG,
	'N': 0, 'n': 0,
}

// fourBitToASCII is the inverse of asciiToFourBit, used when rendering a
// packed sequence back to a human-readable IUPAC string.
var fourBitToASCII = [16]byte{
	0:                          'N',
	BaseA:                      'A',
	BaseC:                      'C',
	BaseA | BaseC:              'M',
	BaseG:                      'G',
	BaseA | BaseG:              'R',
	BaseC | BaseG:              'S',
	BaseA | BaseC | BaseG:      'V',
	BaseT:                      'T',
	BaseA | BaseT:              'W',
	BaseC | BaseT:              'Y',
	BaseA | BaseC | BaseT:      'H',
	BaseG | BaseT:              'K',
	BaseA | BaseG | BaseT:      'D',
	BaseC | BaseG | BaseT:      'B',
	BaseA | BaseC | BaseG | BaseT: 'N',
}

// asciiToTwoBit maps an unambiguous ASCII base to its 2-bit code {A=0, C=1,
// G=2, T=3}. Behaviour is undefined-but-safe for IUPAC ambiguity codes and
// other invalid bytes: they map to 0 ('A'), matching the source library's
// "zeroed cells" posture (spec Open Question: this is behaviour
// preservation, not validation).
var asciiToTwoBit = [128]byte{
	'A': 0, 'a': 0,
	'C': 1, 'c': 1,
	'G': 2, 'g': 2,
	'T': 3, 't': 3,
}

// twoBitToASCII is the inverse of asciiToTwoBit.
var twoBitToASCII = [4]byte{'A', 'C', 'G', 'T'}

// popcount4 is the number of set bits in a 4-bit IUPAC union, i.e. the
// expansion cardinality of a single symbol.
var popcount4 = [16]byte{
	0, 1, 1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4,
}

// ASCIIToFourBit converts a single IUPAC ASCII byte to its 4-bit union
// encoding. Bytes outside the recognized alphabet (including anything with
// the high bit set) encode as 0, treated as a gap by the walker.
func ASCIIToFourBit(b byte) byte {
	if b >= 128 {
		return 0
	}
	return asciiToFourBit[b]
}

// FourBitToASCII renders a 4-bit union back to its canonical IUPAC letter.
func FourBitToASCII(nibble byte) byte {
	return fourBitToASCII[nibble&0xf]
}

// ASCIIToTwoBit converts a single unambiguous ASCII base to its 2-bit code.
// See asciiToTwoBit on the treatment of invalid input.
func ASCIIToTwoBit(b byte) byte {
	if b >= 128 {
		return 0
	}
	return asciiToTwoBit[b]
}

// TwoBitToASCII renders a 2-bit code back to its ASCII base.
func TwoBitToASCII(code byte) byte {
	return twoBitToASCII[code&3]
}

// Popcount4 returns the number of concrete bases a 4-bit IUPAC union
// expands to (0 for a gap/'N').
func Popcount4(nibble byte) int {
	return int(popcount4[nibble&0xf])
}

// ExpansionBase returns the 2-bit base code of the i'th set bit in a 4-bit
// IUPAC union, in increasing bit-index order ({A,C,G,T} = {0,1,2,3}). It
// panics if i >= Popcount4(nibble).
func ExpansionBase(nibble byte, i int) byte {
	for code := byte(0); code < 4; code++ {
		if nibble&(1<<code) != 0 {
			if i == 0 {
				return code
			}
			i--
		}
	}
	panic("seqcode: expansion index out of range")
}
