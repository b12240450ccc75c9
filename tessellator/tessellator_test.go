// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tessellator

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/contents/geometry"
)

func polyline(b *geometry.PathBuilder) geometry.Polyline {
	return b.TakePath().CreatePolyline(geometry.DefaultTolerance)
}

func meshArea(t *testing.T, pts []geometry.Point) float64 {
	t.Helper()
	if len(pts)%3 != 0 {
		t.Fatalf("vertex count %d is not a multiple of 3", len(pts))
	}
	var area float64
	for i := 0; i < len(pts); i += 3 {
		area += math.Abs(pts[i+1].Sub(pts[i]).Cross(pts[i+2].Sub(pts[i]))) / 2
	}
	return area
}

func TestTessellateUnitSquare(t *testing.T) {
	pl := polyline(geometry.NewPathBuilder().AddRect(geometry.MakeXYWH(0, 0, 1, 1)))

	var got []geometry.Point
	res := Tessellator{}.Tessellate(geometry.FillNonZero, pl, func(p geometry.Point) {
		got = append(got, p)
	})
	if res != Success {
		t.Fatalf("Tessellate() = %v, want Success", res)
	}
	want := []geometry.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1},
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
}

func TestTessellateInputError(t *testing.T) {
	tests := []struct {
		name string
		pl   geometry.Polyline
	}{
		{"empty", geometry.Polyline{}},
		{"single point", geometry.Polyline{Points: []geometry.Point{{X: 1, Y: 1}}, ContourStarts: []int{0}}},
		{"two points", polyline(geometry.NewPathBuilder().MoveTo(0, 0).LineTo(5, 5).Close())},
		{"repeated point", polyline(geometry.NewPathBuilder().AddPolyline(geometry.Pt(1, 1), geometry.Pt(1, 1), geometry.Pt(1, 1)))},
		{"collinear", polyline(geometry.NewPathBuilder().MoveTo(0, 0).LineTo(1, 1).LineTo(3, 3).Close())},
		{"horizontal line", polyline(geometry.NewPathBuilder().MoveTo(0, 0).LineTo(1, 0).LineTo(2, 0).Close())},
		{"cancelling contours", polyline(geometry.NewPathBuilder().
			AddPolyline(geometry.Pt(0, 0), geometry.Pt(1, 0), geometry.Pt(1, 1), geometry.Pt(0, 1)).
			AddPolyline(geometry.Pt(0, 0), geometry.Pt(0, 1), geometry.Pt(1, 1), geometry.Pt(1, 0)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			res := Tessellator{}.Tessellate(geometry.FillNonZero, tt.pl, func(geometry.Point) { called = true })
			if res != InputError {
				t.Errorf("Tessellate() = %v, want InputError", res)
			}
			if called {
				t.Error("emit called for degenerate input")
			}
		})
	}
}

func TestTessellateNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		pl := geometry.Polyline{
			Points:        []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: bad, Y: 10}},
			ContourStarts: []int{0},
		}
		if res := (Tessellator{}).Tessellate(geometry.FillNonZero, pl, func(geometry.Point) {}); res != TessellationError {
			t.Errorf("Tessellate(%v) = %v, want TessellationError", bad, res)
		}
	}
}

func TestTessellateEventLimit(t *testing.T) {
	star := polyline(geometry.NewPathBuilder().AddPolyline(
		geometry.Pt(50, 0), geometry.Pt(79, 90), geometry.Pt(2, 35), geometry.Pt(98, 35), geometry.Pt(21, 90),
	))
	if res := (Tessellator{MaxEvents: 3}).Tessellate(geometry.FillNonZero, star, func(geometry.Point) {}); res != TessellationError {
		t.Errorf("Tessellate() = %v, want TessellationError", res)
	}
	if _, res := (Tessellator{}).Triangulate(geometry.FillNonZero, star); res != Success {
		t.Errorf("default limit: Tessellate() = %v, want Success", res)
	}
}

func TestTessellateFillRules(t *testing.T) {
	outer := []geometry.Point{geometry.Pt(0, 0), geometry.Pt(4, 0), geometry.Pt(4, 4), geometry.Pt(0, 4)}
	innerSame := []geometry.Point{geometry.Pt(1, 1), geometry.Pt(3, 1), geometry.Pt(3, 3), geometry.Pt(1, 3)}
	innerReversed := []geometry.Point{geometry.Pt(1, 1), geometry.Pt(1, 3), geometry.Pt(3, 3), geometry.Pt(3, 1)}

	tests := []struct {
		name  string
		inner []geometry.Point
		fill  geometry.FillType
		want  float64
	}{
		{"same direction nonzero", innerSame, geometry.FillNonZero, 16},
		{"same direction evenodd", innerSame, geometry.FillEvenOdd, 12},
		{"reversed nonzero", innerReversed, geometry.FillNonZero, 12},
		{"reversed evenodd", innerReversed, geometry.FillEvenOdd, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl := polyline(geometry.NewPathBuilder().AddPolyline(outer...).AddPolyline(tt.inner...))
			mesh, res := Tessellator{}.Triangulate(tt.fill, pl)
			if res != Success {
				t.Fatalf("Triangulate() = %v, want Success", res)
			}
			if got := meshArea(t, mesh); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("area = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTessellateSelfIntersecting(t *testing.T) {
	bowtie := polyline(geometry.NewPathBuilder().AddPolyline(
		geometry.Pt(0, 0), geometry.Pt(2, 2), geometry.Pt(2, 0), geometry.Pt(0, 2),
	))
	for _, fill := range []geometry.FillType{geometry.FillNonZero, geometry.FillEvenOdd} {
		mesh, res := Tessellator{}.Triangulate(fill, bowtie)
		if res != Success {
			t.Fatalf("%v: Triangulate() = %v", fill, res)
		}
		if got := meshArea(t, mesh); math.Abs(got-2) > 1e-9 {
			t.Errorf("%v: bowtie area = %v, want 2", fill, got)
		}
	}

	star := polyline(geometry.NewPathBuilder().AddPolygon(geometry.Pt(0, 0), 10, 5))
	pentagram := polyline(geometry.NewPathBuilder().AddPolyline(
		star.Points[0], star.Points[2], star.Points[4], star.Points[1], star.Points[3],
	))
	nz, _ := Tessellator{}.Triangulate(geometry.FillNonZero, pentagram)
	eo, _ := Tessellator{}.Triangulate(geometry.FillEvenOdd, pentagram)
	if nzArea, eoArea := meshArea(t, nz), meshArea(t, eo); !(eoArea < nzArea) {
		t.Errorf("even-odd area %v should be smaller than nonzero area %v", eoArea, nzArea)
	}
}

func TestTessellateCircleArea(t *testing.T) {
	const r = 50.0
	pl := polyline(geometry.NewPathBuilder().AddCircle(geometry.Pt(100, 100), r))
	mesh, res := Tessellator{}.Triangulate(geometry.FillNonZero, pl)
	if res != Success {
		t.Fatalf("Triangulate() = %v", res)
	}
	want := math.Pi * r * r
	if got := meshArea(t, mesh); math.Abs(got-want)/want > 0.01 {
		t.Errorf("circle area = %v, want ~%v", got, want)
	}
}

func TestTessellateDeterministic(t *testing.T) {
	pl := polyline(geometry.NewPathBuilder().
		SetFillType(geometry.FillEvenOdd).
		AddCircle(geometry.Pt(0, 0), 20).
		AddRoundedRect(geometry.MakeXYWH(-10, -30, 40, 25), 6))

	first, res1 := Tessellator{}.Triangulate(geometry.FillEvenOdd, pl)
	second, res2 := Tessellator{}.Triangulate(geometry.FillEvenOdd, pl)
	if res1 != Success || res2 != Success {
		t.Fatalf("Triangulate() = %v, %v", res1, res2)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("tessellation not deterministic (-first +second):\n%s", diff)
	}
}

func TestResultString(t *testing.T) {
	for r, want := range map[Result]string{
		Success:           "Success",
		InputError:        "InputError",
		TessellationError: "TessellationError",
		Result(9):         "Unknown",
	} {
		if got := r.String(); got != want {
			t.Errorf("Result(%d).String() = %q, want %q", r, got, want)
		}
	}
}
