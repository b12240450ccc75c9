// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

// FillType selects the winding rule deciding which regions of a path are
// inside.
type FillType uint8

const (
	// FillNonZero fills regions with a non-zero winding number.
	FillNonZero FillType = iota
	// FillEvenOdd fills regions with an odd winding number.
	FillEvenOdd
)

// String returns the name of the fill type.
func (f FillType) String() string {
	switch f {
	case FillNonZero:
		return "NonZero"
	case FillEvenOdd:
		return "EvenOdd"
	default:
		return "Unknown"
	}
}

// Inside reports whether a region with winding number w is filled.
func (f FillType) Inside(w int) bool {
	if f == FillEvenOdd {
		return w&1 != 0
	}
	return w != 0
}
