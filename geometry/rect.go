// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import "math"

// Rect is an axis-aligned rectangle. Min is the top-left corner and Max the
// bottom-right corner in y-down space.
type Rect struct {
	Min, Max Point
}

// MakeLTRB creates a rectangle from its edges.
func MakeLTRB(left, top, right, bottom float64) Rect {
	return Rect{Min: Pt(left, top), Max: Pt(right, bottom)}
}

// MakeXYWH creates a rectangle from its origin and size.
func MakeXYWH(x, y, w, h float64) Rect {
	return Rect{Min: Pt(x, y), Max: Pt(x+w, y+h)}
}

// MakeSize creates a rectangle at the origin with the given size.
func MakeSize(s Size) Rect {
	return MakeXYWH(0, 0, s.Width, s.Height)
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the height of the rectangle.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Size returns the dimensions of the rectangle.
func (r Rect) Size() Size { return Size{Width: r.Width(), Height: r.Height()} }

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return !(r.Max.X > r.Min.X) || !(r.Max.Y > r.Min.Y)
}

// Contains reports whether p lies inside the rectangle. The left and top edges
// are inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Union returns the smallest rectangle containing both r and o. An empty
// rectangle does not contribute.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Rect{
		Min: Pt(math.Min(r.Min.X, o.Min.X), math.Min(r.Min.Y, o.Min.Y)),
		Max: Pt(math.Max(r.Max.X, o.Max.X), math.Max(r.Max.Y, o.Max.Y)),
	}
}

// Intersection returns the overlap of r and o, or the zero Rect.
func (r Rect) Intersection(o Rect) Rect {
	res := Rect{
		Min: Pt(math.Max(r.Min.X, o.Min.X), math.Max(r.Min.Y, o.Min.Y)),
		Max: Pt(math.Min(r.Max.X, o.Max.X), math.Min(r.Max.Y, o.Max.Y)),
	}
	if res.IsEmpty() {
		return Rect{}
	}
	return res
}

// TransformBounds returns the bounding box of the rectangle's four corners
// after transformation by m.
func (r Rect) TransformBounds(m Matrix) Rect {
	corners := [4]Point{
		m.TransformPoint(r.Min),
		m.TransformPoint(Pt(r.Max.X, r.Min.Y)),
		m.TransformPoint(r.Max),
		m.TransformPoint(Pt(r.Min.X, r.Max.Y)),
	}
	out := Rect{Min: corners[0], Max: corners[0]}
	for _, c := range corners[1:] {
		out.Min.X = math.Min(out.Min.X, c.X)
		out.Min.Y = math.Min(out.Min.Y, c.Y)
		out.Max.X = math.Max(out.Max.X, c.X)
		out.Max.Y = math.Max(out.Max.Y, c.Y)
	}
	return out
}
