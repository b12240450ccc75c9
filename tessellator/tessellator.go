// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package tessellator converts flattened path outlines into triangle lists.
//
// The algorithm is a sweep-line trapezoidal decomposition. Every contour is
// implicitly closed. The plane is cut into horizontal slabs at every vertex y
// and every edge intersection y, so no two edges cross inside a slab. Within a
// slab the edges are ordered left to right and their winding directions are
// accumulated; each maximal run that is inside under the fill rule becomes a
// trapezoid, emitted as one or two triangles. Output order is slab top to
// bottom, span left to right, so the same input always yields the same mesh.
package tessellator

import (
	"cmp"
	"slices"

	"github.com/gogpu/contents/geometry"
)

// DefaultMaxEvents is the event limit used when Tessellator.MaxEvents is zero.
const DefaultMaxEvents = 1 << 16

// Result is the outcome of a tessellation.
type Result uint8

const (
	// Success means triangles were emitted.
	Success Result = iota
	// InputError means the input is degenerate and produces nothing: empty,
	// fewer than three distinct points, zero area, or nothing inside under
	// the fill rule. Callers treat it as rendering nothing successfully.
	InputError
	// TessellationError means the outline could not be resolved: non-finite
	// coordinates or more sweep events than the configured limit.
	TessellationError
)

// String returns the name of the result.
func (r Result) String() string {
	switch r {
	case Success:
		return "Success"
	case InputError:
		return "InputError"
	case TessellationError:
		return "TessellationError"
	default:
		return "Unknown"
	}
}

// Tessellator triangulates polylines. The zero value is ready to use and a
// Tessellator holds no state between calls, so it is safe for concurrent use.
type Tessellator struct {
	// MaxEvents caps the number of sweep events (vertex and intersection
	// ys). Zero selects DefaultMaxEvents.
	MaxEvents int
}

// edge is a non-horizontal polyline segment oriented top to bottom.
type edge struct {
	top, bot geometry.Point
	dir      int // +1 if the contour runs downward along this edge
	index    int
}

func (e *edge) xAt(y float64) float64 {
	switch y {
	case e.top.Y:
		return e.top.X
	case e.bot.Y:
		return e.bot.X
	}
	return e.top.X + (y-e.top.Y)*(e.bot.X-e.top.X)/(e.bot.Y-e.top.Y)
}

// Tessellate triangulates pl under the fill rule and passes every vertex of
// the resulting triangle list to emit, three per triangle.
func (t Tessellator) Tessellate(fill geometry.FillType, pl geometry.Polyline, emit func(geometry.Point)) Result {
	if pl.PointCount() == 0 {
		return InputError
	}
	for _, p := range pl.Points {
		if !p.IsFinite() {
			return TessellationError
		}
	}
	if zeroArea(pl.Points) {
		return InputError
	}

	maxEvents := t.MaxEvents
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEvents
	}

	edges := buildEdges(pl)
	if len(edges) == 0 {
		return InputError
	}

	ys := make([]float64, 0, 2*len(edges))
	for i := range edges {
		ys = append(ys, edges[i].top.Y, edges[i].bot.Y)
	}
	ys, ok := appendIntersections(ys, edges, maxEvents)
	if !ok {
		return TessellationError
	}
	slices.Sort(ys)
	ys = slices.Compact(ys)
	if len(ys) > maxEvents {
		return TessellationError
	}

	emitted := sweep(fill, edges, ys, emit)
	if emitted == 0 {
		return InputError
	}
	return Success
}

// Triangulate is Tessellate collecting the vertices into a slice.
func (t Tessellator) Triangulate(fill geometry.FillType, pl geometry.Polyline) ([]geometry.Point, Result) {
	var out []geometry.Point
	res := t.Tessellate(fill, pl, func(p geometry.Point) {
		out = append(out, p)
	})
	if res != Success {
		return nil, res
	}
	return out, res
}

// zeroArea reports whether all points are collinear, which includes fewer
// than three distinct points.
func zeroArea(pts []geometry.Point) bool {
	p0 := pts[0]
	i := 1
	for i < len(pts) && pts[i] == p0 {
		i++
	}
	if i == len(pts) {
		return true
	}
	d := pts[i].Sub(p0)
	for _, p := range pts[i+1:] {
		if d.Cross(p.Sub(p0)) != 0 {
			return false
		}
	}
	return true
}

func buildEdges(pl geometry.Polyline) []edge {
	edges := make([]edge, 0, pl.PointCount())
	for c := 0; c < pl.ContourCount(); c++ {
		pts := pl.Contour(c)
		n := len(pts)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			a, b := pts[i], pts[(i+1)%n]
			if a.Y == b.Y {
				continue
			}
			e := edge{top: a, bot: b, dir: 1, index: len(edges)}
			if a.Y > b.Y {
				e.top, e.bot, e.dir = b, a, -1
			}
			edges = append(edges, e)
		}
	}
	return edges
}

// appendIntersections adds the y of every proper crossing between two edges.
// It gives up once ys grows past limit.
func appendIntersections(ys []float64, edges []edge, limit int) ([]float64, bool) {
	order := make([]int, len(edges))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(edges[a].top.Y, edges[b].top.Y); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	for i, ai := range order {
		a := &edges[ai]
		for _, bi := range order[i+1:] {
			b := &edges[bi]
			if b.top.Y >= a.bot.Y {
				break
			}
			if y, ok := crossingY(a, b); ok {
				ys = append(ys, y)
				if len(ys) > limit {
					return ys, false
				}
			}
		}
	}
	return ys, true
}

// crossingY returns the y where the open segments a and b cross.
func crossingY(a, b *edge) (float64, bool) {
	r := a.bot.Sub(a.top)
	s := b.bot.Sub(b.top)
	denom := r.Cross(s)
	if denom == 0 {
		return 0, false
	}
	q := b.top.Sub(a.top)
	ta := q.Cross(s) / denom
	tb := q.Cross(r) / denom
	if ta <= 0 || ta >= 1 || tb <= 0 || tb >= 1 {
		return 0, false
	}
	return a.top.Y + ta*r.Y, true
}

type crossing struct {
	x0, x1, xm float64
	dir        int
	index      int
}

// sweep emits the inside trapezoids of every slab and returns the number of
// vertices emitted.
func sweep(fill geometry.FillType, edges []edge, ys []float64, emit func(geometry.Point)) int {
	byTop := make([]int, len(edges))
	for i := range byTop {
		byTop[i] = i
	}
	slices.SortFunc(byTop, func(a, b int) int {
		if c := cmp.Compare(edges[a].top.Y, edges[b].top.Y); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	var (
		active  []int
		row     []crossing
		next    int
		emitted int
	)
	for s := 0; s+1 < len(ys); s++ {
		y0, y1 := ys[s], ys[s+1]

		for next < len(byTop) && edges[byTop[next]].top.Y <= y0 {
			active = append(active, byTop[next])
			next++
		}
		active = slices.DeleteFunc(active, func(i int) bool {
			return edges[i].bot.Y <= y0
		})
		if len(active) < 2 {
			continue
		}

		ym := 0.5 * (y0 + y1)
		row = row[:0]
		for _, i := range active {
			e := &edges[i]
			row = append(row, crossing{x0: e.xAt(y0), x1: e.xAt(y1), xm: e.xAt(ym), dir: e.dir, index: i})
		}
		slices.SortFunc(row, func(a, b crossing) int {
			if c := cmp.Compare(a.xm, b.xm); c != 0 {
				return c
			}
			if c := cmp.Compare(a.x0, b.x0); c != 0 {
				return c
			}
			return cmp.Compare(a.index, b.index)
		})

		winding := 0
		left := -1
		for k := range row {
			wasInside := fill.Inside(winding)
			winding += row[k].dir
			inside := fill.Inside(winding)
			switch {
			case !wasInside && inside:
				left = k
			case wasInside && !inside:
				emitted += emitTrapezoid(row[left], row[k], y0, y1, emit)
			}
		}
	}
	return emitted
}

func emitTrapezoid(l, r crossing, y0, y1 float64, emit func(geometry.Point)) int {
	l0, r0 := geometry.Pt(l.x0, y0), geometry.Pt(r.x0, y0)
	l1, r1 := geometry.Pt(l.x1, y1), geometry.Pt(r.x1, y1)
	topWidth := r.x0 - l.x0
	bottomWidth := r.x1 - l.x1

	n := 0
	if topWidth > 0 {
		emit(l0)
		emit(r0)
		emit(r1)
		n += 3
	}
	if bottomWidth > 0 {
		emit(l0)
		emit(r1)
		emit(l1)
		n += 3
	}
	return n
}
