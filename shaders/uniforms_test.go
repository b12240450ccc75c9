// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaders

import (
	"encoding/binary"
	"math"
	"testing"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/contents/geometry"
)

func floatAt(t *testing.T, b []byte, offset int) float32 {
	t.Helper()
	if offset+4 > len(b) {
		t.Fatalf("offset %d beyond %d bytes", offset, len(b))
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b[offset:]))
}

func TestLinearGradientInfoLayout(t *testing.T) {
	u := LinearGradientInfo{
		StartPoint: f32.Vec2{1, 2},
		EndPoint:   f32.Vec2{3, 4},
		StartColor: f32.Vec4{0.1, 0.2, 0.3, 0.4},
		EndColor:   f32.Vec4{0.5, 0.6, 0.7, 0.8},
		TileMode:   2,
	}
	b := u.Append(nil)
	if len(b) != LinearGradientInfoSize {
		t.Fatalf("size = %d, want %d", len(b), LinearGradientInfoSize)
	}

	fields := []struct {
		name   string
		offset int
		want   float32
	}{
		{"start_point.x", 0, 1},
		{"start_point.y", 4, 2},
		{"end_point.x", 8, 3},
		{"end_point.y", 12, 4},
		{"start_color.r", 16, 0.1},
		{"start_color.a", 28, 0.4},
		{"end_color.r", 32, 0.5},
		{"end_color.a", 44, 0.8},
		{"tile_mode", 48, 2},
	}
	for _, f := range fields {
		if got := floatAt(t, b, f.offset); got != f.want {
			t.Errorf("%s @%d = %v, want %v", f.name, f.offset, got, f.want)
		}
	}

	decoded, err := DecodeLinearGradientInfo(b)
	if err != nil {
		t.Fatal(err)
	}
	if decoded != u {
		t.Errorf("decoded = %+v, want %+v", decoded, u)
	}
}

func TestFrameInfoLayout(t *testing.T) {
	mvp := geometry.MakeOrthographic(geometry.ISize{Width: 100, Height: 50})
	u := FrameInfo{MVP: MatrixToMat4(mvp), Matrix: MatrixToMat4(geometry.MakeTranslation(7, 9))}
	b := u.Append(nil)
	if len(b) != FrameInfoSize {
		t.Fatalf("size = %d, want %d", len(b), FrameInfoSize)
	}
	// Column-major: the translation of matrix sits in the fourth column.
	if got := floatAt(t, b, 64+12*4); got != 7 {
		t.Errorf("matrix[12] = %v, want 7", got)
	}
	if got := floatAt(t, b, 64+13*4); got != 9 {
		t.Errorf("matrix[13] = %v, want 9", got)
	}
	if got := floatAt(t, b, 0); got != float32(2.0/100) {
		t.Errorf("mvp[0] = %v, want %v", got, 2.0/100)
	}
	if got := floatAt(t, b, 12*4); got != -1 {
		t.Errorf("mvp[12] = %v, want -1", got)
	}
}

func TestRadialAndSweepLayout(t *testing.T) {
	r := RadialGradientInfo{Center: f32.Vec2{5, 6}, Radius: 10, TileMode: 1, EdgeColor: f32.Vec4{0, 0, 1, 1}}
	rb := r.Append(nil)
	if len(rb) != RadialGradientInfoSize {
		t.Fatalf("radial size = %d, want %d", len(rb), RadialGradientInfoSize)
	}
	if floatAt(t, rb, 8) != 10 || floatAt(t, rb, 12) != 1 || floatAt(t, rb, 40) != 1 {
		t.Errorf("radial layout mismatch: %v", rb)
	}

	s := SweepGradientInfo{Center: f32.Vec2{1, 1}, Bias: -0.25, Scale: 2, TileMode: 3}
	sb := s.Append(nil)
	if len(sb) != SweepGradientInfoSize {
		t.Fatalf("sweep size = %d, want %d", len(sb), SweepGradientInfoSize)
	}
	if floatAt(t, sb, 8) != -0.25 || floatAt(t, sb, 12) != 2 || floatAt(t, sb, 48) != 3 {
		t.Errorf("sweep layout mismatch: %v", sb)
	}
	if d, err := DecodeSweepGradientInfo(sb); err != nil || d != s {
		t.Errorf("DecodeSweepGradientInfo = %+v, %v", d, err)
	}
}

func TestSmallUniformSizes(t *testing.T) {
	if n := len(SolidFillInfo{}.Append(nil)); n != SolidFillInfoSize {
		t.Errorf("SolidFillInfo size = %d", n)
	}
	if n := len(TextureFillInfo{Alpha: 1}.Append(nil)); n != TextureFillInfoSize {
		t.Errorf("TextureFillInfo size = %d", n)
	}
}

func TestDecodeShortBuffer(t *testing.T) {
	if _, err := DecodeLinearGradientInfo(make([]byte, 63)); err != ErrShortBuffer {
		t.Errorf("err = %v, want ErrShortBuffer", err)
	}
	if _, err := DecodeFrameInfo(nil); err != ErrShortBuffer {
		t.Errorf("err = %v, want ErrShortBuffer", err)
	}
}
