// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import (
	"math"
	"testing"
)

const eps = 1e-9

func pointNear(a, b Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translation", MakeTranslation(10, -5), Pt(1, 1), Pt(11, -4)},
		{"scale", MakeScale(2, 3), Pt(1, 1), Pt(2, 3)},
		{"rotation 90deg", MakeRotationZ(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
		{"skew", MakeSkew(1, 0), Pt(0, 2), Pt(2, 2)},
		{"translate after scale", MakeTranslation(5, 5).Multiply(MakeScale(2, 2)), Pt(1, 1), Pt(7, 7)},
		{"scale after translate", MakeScale(2, 2).Multiply(MakeTranslation(5, 5)), Pt(1, 1), Pt(12, 12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if !pointNear(got, tt.want) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMakeOrthographic(t *testing.T) {
	m := MakeOrthographic(ISize{Width: 200, Height: 100})
	tests := []struct {
		in, want Point
	}{
		{Pt(0, 0), Pt(-1, 1)},
		{Pt(200, 100), Pt(1, -1)},
		{Pt(100, 50), Pt(0, 0)},
		{Pt(200, 0), Pt(1, 1)},
	}
	for _, tt := range tests {
		if got := m.TransformPoint(tt.in); !pointNear(got, tt.want) {
			t.Errorf("ortho(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if m[14] != 0.5 {
		t.Errorf("ortho z translation = %v, want 0.5", m[14])
	}
}

func TestMatrixInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translation", MakeTranslation(3, -7)},
		{"scale", MakeScale(2, 0.5)},
		{"rotation", MakeRotationZ(0.7)},
		{"composite", MakeTranslation(10, 20).Multiply(MakeRotationZ(1.1)).Multiply(MakeScale(3, 2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.InvertOK()
			if !ok {
				t.Fatal("InvertOK() = false, want true")
			}
			p := Pt(12.5, -3.25)
			if got := inv.TransformPoint(tt.m.TransformPoint(p)); !pointNear(got, p) {
				t.Errorf("inverse round trip = %v, want %v", got, p)
			}
			prod := tt.m.Multiply(inv)
			for i := range prod {
				if math.Abs(prod[i]-Identity()[i]) > eps {
					t.Fatalf("m * inv = %v, want identity", prod)
				}
			}
		})
	}
}

func TestMatrixInvertSingular(t *testing.T) {
	m := MakeScale(0, 1)
	if m.IsInvertible() {
		t.Error("IsInvertible() = true for zero scale")
	}
	inv, ok := m.InvertOK()
	if ok {
		t.Error("InvertOK() = true for zero scale")
	}
	if !inv.IsIdentity() {
		t.Errorf("Invert of singular = %v, want identity", inv)
	}
}

func TestMatrixInvert2D(t *testing.T) {
	ortho := MakeOrthographic(ISize{Width: 64, Height: 32})
	if ortho.IsInvertible() {
		t.Fatal("orthographic flattens z and must not be 4x4 invertible")
	}
	mvp := ortho.Multiply(MakeTranslation(4, 8)).Multiply(MakeScale(2, 2))
	inv, ok := mvp.Invert2D()
	if !ok {
		t.Fatal("Invert2D() = false")
	}
	p := Pt(3, 5)
	if got := inv.TransformPoint(mvp.TransformPoint(p)); !pointNear(got, p) {
		t.Errorf("Invert2D round trip = %v, want %v", got, p)
	}
}

func TestIsTranslationOnly(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"translation", MakeTranslation(1, 2), true},
		{"scale", MakeScale(2, 2), false},
		{"rotation", MakeRotationZ(0.1), false},
		{"zero matrix", Matrix{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsTranslationOnly(); got != tt.want {
				t.Errorf("IsTranslationOnly() = %v, want %v", got, tt.want)
			}
		})
	}
}
