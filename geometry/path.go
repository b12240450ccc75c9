// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import "math"

// Element represents a single element in a path.
type Element interface {
	isPathElement()
}

// MoveTo starts a new contour at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current contour.
type Close struct{}

func (Close) isPathElement() {}

// Path is an immutable vector outline: an ordered sequence of contours made
// of line and curve segments, plus the fill rule used to fill it.
//
// A Path is created with a PathBuilder and is safe for concurrent reads.
type Path struct {
	elements []Element
	fillType FillType
	contours int
	bounds   Rect
}

// FillType returns the winding rule of the path.
func (p *Path) FillType() FillType {
	if p == nil {
		return FillNonZero
	}
	return p.fillType
}

// IsEmpty reports whether the path has no drawing segments.
func (p *Path) IsEmpty() bool {
	if p == nil {
		return true
	}
	for _, e := range p.elements {
		switch e.(type) {
		case LineTo, QuadTo, CubicTo:
			return false
		}
	}
	return true
}

// Contours returns the number of contours in the path.
func (p *Path) Contours() int {
	if p == nil {
		return 0
	}
	return p.contours
}

// Bounds returns the bounding box of all points in the path, control points
// included.
func (p *Path) Bounds() Rect {
	if p == nil {
		return Rect{}
	}
	return p.bounds
}

// Elements returns a copy of the path elements.
func (p *Path) Elements() []Element {
	if p == nil {
		return nil
	}
	out := make([]Element, len(p.elements))
	copy(out, p.elements)
	return out
}

// Transform returns a new path with all points transformed by m.
func (p *Path) Transform(m Matrix) *Path {
	if p == nil {
		return nil
	}
	b := NewPathBuilder()
	b.SetFillType(p.fillType)
	for _, e := range p.elements {
		switch e := e.(type) {
		case MoveTo:
			b.moveTo(m.TransformPoint(e.Point))
		case LineTo:
			b.lineTo(m.TransformPoint(e.Point))
		case QuadTo:
			b.quadTo(m.TransformPoint(e.Control), m.TransformPoint(e.Point))
		case CubicTo:
			b.cubicTo(m.TransformPoint(e.Control1), m.TransformPoint(e.Control2), m.TransformPoint(e.Point))
		case Close:
			b.Close()
		}
	}
	return b.TakePath()
}

func computeBounds(elements []Element) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	add := func(pt Point) {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	for _, e := range elements {
		switch e := e.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case QuadTo:
			add(e.Control)
			add(e.Point)
		case CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	if minX > maxX {
		return Rect{}
	}
	return MakeLTRB(minX, minY, maxX, maxY)
}
