// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import "math"

// DefaultTolerance is the maximum allowed deviation between a curve and its
// linear approximation, in local units. 0.25 gives sub-pixel accuracy at
// identity scale.
const DefaultTolerance = 0.25

// maxFlattenDepth bounds curve subdivision depth.
const maxFlattenDepth = 16

// Polyline is a path outline flattened into straight segments. Points holds
// all contours back to back; ContourStarts holds the index of each contour's
// first point. Contours are implicitly closed.
type Polyline struct {
	Points        []Point
	ContourStarts []int
}

// PointCount returns the total number of points across all contours.
func (pl Polyline) PointCount() int {
	return len(pl.Points)
}

// ContourCount returns the number of contours.
func (pl Polyline) ContourCount() int {
	return len(pl.ContourStarts)
}

// Contour returns the points of contour i. The slice aliases Points.
func (pl Polyline) Contour(i int) []Point {
	if i < 0 || i >= len(pl.ContourStarts) {
		return nil
	}
	end := len(pl.Points)
	if i+1 < len(pl.ContourStarts) {
		end = pl.ContourStarts[i+1]
	}
	return pl.Points[pl.ContourStarts[i]:end]
}

// CreatePolyline flattens the path into a polyline. Curves are subdivided
// until they deviate from their chords by at most tolerance; a non-positive
// tolerance selects DefaultTolerance. A trailing point equal to the contour
// start is dropped since contours close implicitly.
func (p *Path) CreatePolyline(tolerance float64) Polyline {
	if tolerance <= 0 || math.IsNaN(tolerance) {
		tolerance = DefaultTolerance
	}
	f := flattener{tol: tolerance}
	if p == nil {
		return f.pl
	}
	for _, e := range p.elements {
		switch e := e.(type) {
		case MoveTo:
			f.endContour()
			f.beginContour(e.Point)
		case LineTo:
			f.push(e.Point)
		case QuadTo:
			f.quad(f.last, e.Control, e.Point, 0)
		case CubicTo:
			f.cubic(f.last, e.Control1, e.Control2, e.Point, 0)
		case Close:
			f.endContour()
		}
	}
	f.endContour()
	return f.pl
}

type flattener struct {
	pl    Polyline
	tol   float64
	start int
	last  Point
	open  bool
}

func (f *flattener) beginContour(pt Point) {
	f.start = len(f.pl.Points)
	f.pl.ContourStarts = append(f.pl.ContourStarts, f.start)
	f.pl.Points = append(f.pl.Points, pt)
	f.last = pt
	f.open = true
}

func (f *flattener) endContour() {
	if !f.open {
		return
	}
	f.open = false
	n := len(f.pl.Points)
	if n-f.start > 1 && f.pl.Points[n-1] == f.pl.Points[f.start] {
		f.pl.Points = f.pl.Points[:n-1]
	}
}

func (f *flattener) push(pt Point) {
	if !f.open {
		// Segment after Close starts a new contour at the previous start.
		f.beginContour(f.last)
	}
	if pt == f.last {
		return
	}
	f.pl.Points = append(f.pl.Points, pt)
	f.last = pt
}

// quad flattens a quadratic Bezier with de Casteljau subdivision, testing the
// deviation of the curve midpoint from the chord midpoint.
func (f *flattener) quad(p0, c, p1 Point, depth int) {
	mid := p0.Mul(0.25).Add(c.Mul(0.5)).Add(p1.Mul(0.25))
	chordMid := p0.Add(p1).Mul(0.5)
	d := mid.Sub(chordMid)
	if depth >= maxFlattenDepth || !(d.Dot(d) > f.tol*f.tol) {
		f.push(p1)
		return
	}
	a := p0.Lerp(c, 0.5)
	b := c.Lerp(p1, 0.5)
	m := a.Lerp(b, 0.5)
	f.quad(p0, a, m, depth+1)
	f.quad(m, b, p1, depth+1)
}

// cubic flattens a cubic Bezier. Both control points must lie within
// tolerance of the chord; the factor of 16 is the cubic error bound.
func (f *flattener) cubic(p0, c1, c2, p1 Point, depth int) {
	u := c1.Mul(3).Sub(p0.Mul(2)).Sub(p1)
	v := c2.Mul(3).Sub(p0).Sub(p1.Mul(2))
	distSq := math.Max(u.Dot(u), v.Dot(v))
	if depth >= maxFlattenDepth || !(distSq > 16*f.tol*f.tol) {
		f.push(p1)
		return
	}
	ab1 := p0.Lerp(c1, 0.5)
	ab2 := c1.Lerp(c2, 0.5)
	ab3 := c2.Lerp(p1, 0.5)
	bc1 := ab1.Lerp(ab2, 0.5)
	bc2 := ab2.Lerp(ab3, 0.5)
	m := bc1.Lerp(bc2, 0.5)
	f.cubic(p0, ab1, bc1, m, depth+1)
	f.cubic(m, bc2, ab3, p1, depth+1)
}
